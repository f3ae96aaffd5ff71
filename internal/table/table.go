// Package table holds the in-memory tabular representation every pipeline
// stage works on. A cell is nil (missing), string, int64, float64,
// time.Time or bool. Missing is always nil, never an empty string.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row maps column name to cell value.
type Row map[string]any

// Table is a header-ordered set of rows.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) Table {
	return Table{Columns: columns}
}

func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Select projects the table to the given columns. Values absent from a row
// come through as nil.
func (t Table) Select(columns ...string) Table {
	out := Table{Columns: append([]string(nil), columns...)}
	for _, r := range t.Rows {
		nr := make(Row, len(columns))
		for _, c := range columns {
			nr[c] = r[c]
		}
		out.Append(nr)
	}
	return out
}

// DistinctBy keeps the first row per distinct combination of key column
// values, preserving input order.
func (t Table) DistinctBy(keys ...string) Table {
	out := Table{Columns: append([]string(nil), t.Columns...)}
	seen := make(map[string]bool, len(t.Rows))
	for _, r := range t.Rows {
		k := CompositeKey(r, keys)
		if seen[k] {
			continue
		}
		seen[k] = true
		out.Append(r)
	}
	return out
}

// CompositeKey builds a deduplication/join key from the given columns.
// The unit separator keeps ("a", "bc") distinct from ("ab", "c").
func CompositeKey(r Row, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = FormatValue(r[c])
	}
	return strings.Join(parts, "\x1f")
}

// FormatValue renders a cell as text. nil becomes the empty string, which is
// what the CSV writer and key builders expect for missing values.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
