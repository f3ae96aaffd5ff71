package fact

import (
	"fmt"
	"maps"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/schema"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// Result is one built fact batch, validated and ready for the bulk loader.
type Result struct {
	Spec  entity.FactSpec
	Table table.Table
	// Dropped counts rows lost to an unresolved required foreign key or a
	// missing grain value. Reported as an aggregate, never per-row noise.
	Dropped int
}

// Build joins the canonical rows against the resolved key maps, aggregates
// to the fact's grain and validates the result against the fact contract.
// A contract violation here is always an error: it means the grain or join
// logic is broken, not that the source was dirty.
func Build(silver table.Table, spec entity.FactSpec, keys map[string]*entity.KeyMap) (Result, error) {
	dropped := 0
	var rows []table.Row

	for _, src := range silver.Rows {
		r := maps.Clone(src)
		keep := true
		for _, fk := range spec.ForeignKeys {
			km, ok := keys[fk.Dimension]
			if !ok {
				return Result{}, fmt.Errorf("no key map resolved for %s", fk.Dimension)
			}
			id, found := km.Lookup(r)
			if !found {
				if fk.Required {
					keep = false
					break
				}
				id = entity.UnknownKey
			}
			r[fk.Column] = id
		}
		if keep {
			for _, g := range spec.Grain {
				if r[g] == nil {
					keep = false
					break
				}
			}
		}
		if !keep {
			dropped++
			continue
		}
		rows = append(rows, r)
	}

	aggregated := aggregate(rows, spec)

	validated, err := spec.Contract.Validate(aggregated)
	if err != nil {
		return Result{}, fmt.Errorf("fact %s failed validation: %w", spec.Table, err)
	}
	return Result{Spec: spec, Table: validated, Dropped: dropped}, nil
}

// aggregate groups rows by the grain columns and reduces every contract
// column with its declared rule. Grain columns and undeclared columns take
// the first non-missing value in the group (arbitrary-tie "first").
func aggregate(rows []table.Row, spec entity.FactSpec) table.Table {
	out := table.Table{Columns: spec.Contract.ColumnNames()}

	groups := make(map[string][]table.Row)
	var order []string
	for _, r := range rows {
		k := table.CompositeKey(r, spec.Grain)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	for _, k := range order {
		group := groups[k]
		reduced := make(table.Row, len(spec.Contract.Columns))
		for _, col := range spec.Contract.Columns {
			rule := spec.Reductions[col.Name]
			switch rule {
			case entity.ReduceSum:
				reduced[col.Name] = reduceSum(group, col)
			case entity.ReduceMean:
				reduced[col.Name] = reduceMean(group, col.Name)
			default:
				reduced[col.Name] = reduceFirst(group, col.Name)
			}
		}
		out.Append(reduced)
	}
	return out
}

func reduceFirst(group []table.Row, column string) any {
	for _, r := range group {
		if r[column] != nil {
			return r[column]
		}
	}
	return nil
}

func reduceSum(group []table.Row, col schema.Column) any {
	sum, n := foldNumeric(group, col.Name)
	if n == 0 {
		return nil
	}
	if col.Type == schema.TypeInteger {
		return int64(sum)
	}
	return sum
}

func reduceMean(group []table.Row, column string) any {
	sum, n := foldNumeric(group, column)
	if n == 0 {
		return nil
	}
	return sum / float64(n)
}

func foldNumeric(group []table.Row, column string) (float64, int) {
	var sum float64
	n := 0
	for _, r := range group {
		switch v := r[column].(type) {
		case float64:
			sum += v
			n++
		case int64:
			sum += float64(v)
			n++
		case int:
			sum += float64(v)
			n++
		}
	}
	return sum, n
}

// LoadRows renders the validated fact table as positional rows for the bulk
// loader, in contract column order.
func (r Result) LoadRows() [][]any {
	cols := r.Spec.Contract.ColumnNames()
	rows := make([][]any, len(r.Table.Rows))
	for i, row := range r.Table.Rows {
		values := make([]any, len(cols))
		for j, c := range cols {
			values[j] = row[c]
		}
		rows[i] = values
	}
	return rows
}
