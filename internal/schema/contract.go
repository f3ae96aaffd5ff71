// Package schema implements the column-level contract every table must pass
// before it is treated as canonical or loaded into the warehouse.
package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

type Type string

const (
	TypeString    Type = "string"
	TypeInteger   Type = "integer"
	TypeFloat     Type = "float"
	TypeTimestamp Type = "timestamp"
	TypeBoolean   Type = "boolean"
)

type Column struct {
	Name     string
	Type     Type
	Nullable bool
	Unique   bool
}

// Contract declares the exact shape of a table: its columns in order, their
// types and their constraints. Columns outside the contract are dropped.
type Contract struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the declared column names in contract order.
func (c Contract) ColumnNames() []string {
	names := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		names[i] = col.Name
	}
	return names
}

// Validate coerces and checks a table against the contract. The returned
// table has exactly the contract's columns in the contract's order. Values
// that cannot be coerced become nil; for a non-nullable column
// the row is a failure case and validation fails with the offending rows
// attached, so the caller can show why each row was rejected.
func (c Contract) Validate(t table.Table) (table.Table, error) {
	out := table.Table{Columns: c.ColumnNames()}
	for _, src := range t.Rows {
		row := make(table.Row, len(c.Columns))
		for _, col := range c.Columns {
			row[col.Name] = coerce(src[col.Name], col.Type)
		}
		out.Append(row)
	}

	for _, col := range c.Columns {
		if !col.Nullable {
			var coercion, missing []table.Row
			for i, row := range out.Rows {
				if row[col.Name] != nil {
					continue
				}
				if t.Rows[i][col.Name] != nil {
					coercion = append(coercion, t.Rows[i])
				} else {
					missing = append(missing, t.Rows[i])
				}
			}
			if len(coercion) > 0 {
				return table.Table{}, &Error{Contract: c.Name, Kind: KindCoercion, Column: col.Name, Rows: coercion}
			}
			if len(missing) > 0 {
				return table.Table{}, &Error{Contract: c.Name, Kind: KindMissingRequired, Column: col.Name, Rows: missing}
			}
		}
		if col.Unique {
			if dup := duplicates(out, col.Name); len(dup) > 0 {
				return table.Table{}, &Error{Contract: c.Name, Kind: KindDuplicate, Column: col.Name, Rows: dup}
			}
		}
	}
	return out, nil
}

func duplicates(t table.Table, column string) []table.Row {
	seen := make(map[string]bool, len(t.Rows))
	var dup []table.Row
	for _, row := range t.Rows {
		if row[column] == nil {
			continue
		}
		k := table.FormatValue(row[column])
		if seen[k] {
			dup = append(dup, row)
		}
		seen[k] = true
	}
	return dup
}

// coerce converts a cell to the declared type, returning nil when the value
// cannot be interpreted. Locale-specific formats (currencies, local month
// names) are the normalizer's job and must be resolved before validation.
func coerce(v any, to Type) any {
	if v == nil {
		return nil
	}
	switch to {
	case TypeString:
		s := strings.TrimSpace(table.FormatValue(v))
		if s == "" {
			return nil
		}
		return s
	case TypeInteger:
		return coerceInteger(v)
	case TypeFloat:
		return coerceFloat(v)
	case TypeTimestamp:
		return coerceTimestamp(v)
	case TypeBoolean:
		return coerceBoolean(v)
	}
	return nil
}

func coerceInteger(v any) any {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		s := strings.TrimSpace(x)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
	}
	return nil
}

func coerceFloat(v any) any {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return f
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func coerceTimestamp(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
	}
	return nil
}

func coerceBoolean(v any) any {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
			return b
		}
	}
	return nil
}
