package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

func TestImputeAmountUsesKeyMean(t *testing.T) {
	tbl := table.New("sku", "qty", "subtotal")
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": int64(1), "subtotal": 100.0})
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": int64(1), "subtotal": 300.0})
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": int64(2), "subtotal": nil})

	n := ImputeAmount(&tbl, "subtotal", "qty", "sku")

	require.Equal(t, 1, n)
	require.InDelta(t, 400.0, tbl.Rows[2]["subtotal"], 1e-9)
}

func TestImputeAmountFallsBackToGlobalMedian(t *testing.T) {
	tbl := table.New("sku", "qty", "subtotal")
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": int64(1), "subtotal": 100.0})
	tbl.Append(table.Row{"sku": "MDN-002", "qty": int64(1), "subtotal": 300.0})
	tbl.Append(table.Row{"sku": "HRB-003", "qty": int64(3), "subtotal": nil})

	n := ImputeAmount(&tbl, "subtotal", "qty", "sku")

	require.Equal(t, 1, n)
	// median per unit of (100, 300) is 200, times qty 3
	require.InDelta(t, 600.0, tbl.Rows[2]["subtotal"], 1e-9)
}

func TestImputeAmountSkipsUnusableRows(t *testing.T) {
	tbl := table.New("sku", "qty", "subtotal")
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": nil, "subtotal": nil})
	tbl.Append(table.Row{"sku": "ZYY-001", "qty": int64(0), "subtotal": nil})

	n := ImputeAmount(&tbl, "subtotal", "qty", "sku")

	require.Equal(t, 0, n)
	require.Nil(t, tbl.Rows[0]["subtotal"])
	require.Nil(t, tbl.Rows[1]["subtotal"])
}

func TestImputeAmountIsDeterministic(t *testing.T) {
	build := func() table.Table {
		tbl := table.New("sku", "qty", "subtotal")
		tbl.Append(table.Row{"sku": "A", "qty": int64(1), "subtotal": 10.0})
		tbl.Append(table.Row{"sku": "B", "qty": int64(1), "subtotal": 30.0})
		tbl.Append(table.Row{"sku": "C", "qty": int64(1), "subtotal": 20.0})
		tbl.Append(table.Row{"sku": "D", "qty": int64(2), "subtotal": nil})
		return tbl
	}

	first := build()
	ImputeAmount(&first, "subtotal", "qty", "sku")
	for i := 0; i < 10; i++ {
		next := build()
		ImputeAmount(&next, "subtotal", "qty", "sku")
		require.Equal(t, first.Rows[3]["subtotal"], next.Rows[3]["subtotal"])
	}
}
