package silver

import (
	"bytes"
	"fmt"
	"math"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/normalize"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// RepairThreshold is the cutoff for the truncated-thousands repair: a price
// of 45 in the buggy export really means 45000.
const RepairThreshold = 100

// Standardize turns one raw export into the canonical silver table: rename,
// clean, vocabulary mapping, currency parsing, truncation repair, time
// parsing, subtotal imputation, then contract validation. Parse failures
// become missing; only the contract decides what must not be missing.
func Standardize(content []byte, layoutID string) (table.Table, error) {
	layout, ok := Layouts[layoutID]
	if !ok {
		return table.Table{}, fmt.Errorf("unknown source layout %q", layoutID)
	}

	raw, err := table.FromCSV(bytes.NewReader(content))
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to parse export file: %w", err)
	}

	t := rename(raw, layout.Rename)

	normalize.CleanColumns(&t, t.Columns...)
	normalize.LowerColumns(&t, "order_status", "payment_method")
	normalize.MapValues(&t, "order_status", StatusVocab)
	normalize.MapValues(&t, "payment_method", PaymentVocab)

	parseMonetary(&t)
	for _, c := range layout.RepairColumns {
		repair(&t, c)
	}
	parseTimes(&t)

	normalize.ImputeAmount(&t, "subtotal", "qty", "sku")

	t.Columns = append(t.Columns, "marketplace")
	for _, r := range t.Rows {
		r["marketplace"] = layout.Marketplace
	}

	canonical, err := Contract.Validate(t)
	if err != nil {
		return table.Table{}, fmt.Errorf("silver validation failed: %w", err)
	}
	return canonical, nil
}

// rename maps source headers to canonical columns. Headers outside the
// layout keep their names; the contract drops them at validation.
func rename(t table.Table, mapping map[string]string) table.Table {
	out := table.Table{Columns: make([]string, len(t.Columns))}
	for i, c := range t.Columns {
		if canonical, ok := mapping[c]; ok {
			out.Columns[i] = canonical
		} else {
			out.Columns[i] = c
		}
	}
	for _, r := range t.Rows {
		nr := make(table.Row, len(r))
		for i, c := range t.Columns {
			nr[out.Columns[i]] = r[c]
		}
		out.Append(nr)
	}
	return out
}

// parseMonetary runs the locale-tolerant currency parser over every money
// column. Discounts arrive negative in some exports; silver keeps amounts
// non-negative.
func parseMonetary(t *table.Table) {
	for _, r := range t.Rows {
		for _, c := range MonetaryColumns {
			s, ok := r[c].(string)
			if !ok {
				continue
			}
			if v, parsed := normalize.ParseCurrency(s); parsed {
				r[c] = math.Abs(v)
			} else {
				r[c] = nil
			}
		}
	}
}

func repair(t *table.Table, column string) {
	for _, r := range t.Rows {
		if v, ok := r[column].(float64); ok {
			r[column] = normalize.RepairTruncated(v, RepairThreshold)
		}
	}
}

func parseTimes(t *table.Table) {
	for _, r := range t.Rows {
		for _, c := range TimeColumns {
			s, ok := r[c].(string)
			if !ok {
				continue
			}
			if ts, parsed := normalize.ParseTime(s); parsed {
				r[c] = ts
			} else {
				r[c] = nil
			}
		}
	}
}
