package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected float64
		ok       bool
	}{
		{name: "ascii thousands comma", in: "6,000", expected: 6000, ok: true},
		{name: "ascii thousands comma with decimals", in: "3,000.50", expected: 3000.5, ok: true},
		{name: "decimal comma", in: "9856,5", expected: 9856.5, ok: true},
		{name: "european thousands dot", in: "12.345,67", expected: 12345.67, ok: true},
		{name: "european thousands dot no decimals", in: "3.500", expected: 3500, ok: true},
		{name: "plain integer", in: "5000", expected: 5000, ok: true},
		{name: "plain decimal", in: "1234.56", expected: 1234.56, ok: true},
		{name: "rupiah prefix", in: "Rp 15.000", expected: 15000, ok: true},
		{name: "negative thousands", in: "-2,000", expected: -2000, ok: true},
		{name: "surrounding whitespace", in: "  7,500 ", expected: 7500, ok: true},
		{name: "not a number", in: "gratis", expected: 0, ok: false},
		{name: "empty", in: "", expected: 0, ok: false},
		{name: "mixed garbage", in: "1,00,0", expected: 0, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := ParseCurrency(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.InDelta(t, tc.expected, v, 1e-9)
			}
		})
	}
}

func TestParseCurrencyDeterministicOrder(t *testing.T) {
	// "6,000" is ambiguous between six thousand and six point zero; the
	// priority order must always pick thousands.
	for i := 0; i < 100; i++ {
		v, ok := ParseCurrency("6,000")
		require.True(t, ok)
		require.Equal(t, 6000.0, v)
	}
}

func TestRepairTruncated(t *testing.T) {
	testCases := []struct {
		name     string
		in       float64
		expected float64
	}{
		{name: "below threshold scales", in: 45, expected: 45000},
		{name: "at threshold stays", in: 100, expected: 100},
		{name: "above threshold stays", in: 450, expected: 450},
		{name: "zero stays", in: 0, expected: 0},
		{name: "negative stays", in: -45, expected: -45},
		{name: "fractional below threshold scales", in: 99.5, expected: 99500},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, RepairTruncated(tc.in, 100))
		})
	}
}
