package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// ImputeAmount fills a missing monetary total from other rows that share the
// same product key: the key's mean per-unit value times this row's quantity.
// Keys without history fall back to the global median per-unit value. This is
// a domain repair heuristic for one export's dropped totals, and it has to
// stay byte-for-byte deterministic across runs. Returns the number of rows
// imputed.
func ImputeAmount(t *table.Table, amountColumn, qtyColumn, keyColumn string) int {
	perUnitByKey := make(map[string][]float64)
	var all []float64

	for _, r := range t.Rows {
		amount, okA := asFloat(r[amountColumn])
		qty, okQ := asFloat(r[qtyColumn])
		key, okK := r[keyColumn].(string)
		if !okA || !okQ || !okK || qty <= 0 {
			continue
		}
		perUnit := amount / qty
		perUnitByKey[key] = append(perUnitByKey[key], perUnit)
		all = append(all, perUnit)
	}

	meanByKey := make(map[string]float64, len(perUnitByKey))
	for key, values := range perUnitByKey {
		var sum float64
		for _, v := range values {
			sum += v
		}
		meanByKey[key] = sum / float64(len(values))
	}
	globalMedian, hasMedian := median(all)

	imputed := 0
	for _, r := range t.Rows {
		if r[amountColumn] != nil {
			continue
		}
		qty, okQ := asFloat(r[qtyColumn])
		if !okQ || qty <= 0 {
			continue
		}
		key, _ := r[keyColumn].(string)
		if mean, ok := meanByKey[key]; ok {
			r[amountColumn] = mean * qty
			imputed++
			continue
		}
		if hasMedian {
			r[amountColumn] = globalMedian * qty
			imputed++
		}
	}
	return imputed
}

func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
