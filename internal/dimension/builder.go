package dimension

import (
	"maps"

	"github.com/samber/lo"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// Result is one built dimension batch, ready for the bulk loader.
type Result struct {
	Spec  entity.DimensionSpec
	Table table.Table
	// UnresolvedParents counts rows that got the sentinel id because their
	// parent natural key had no persisted match. Reported, never an error:
	// a missing parent must not abort the load.
	UnresolvedParents int
}

// Build derives the dimension's deduplicated rows from the canonical table.
// For a dependent dimension, parents is the key map of the parent dimension;
// independent dimensions pass nil.
func Build(silver table.Table, spec entity.DimensionSpec, parents *entity.KeyMap) Result {
	deduped := naturalRows(silver, spec)

	unresolved := 0
	if spec.Parent != nil {
		for _, r := range deduped.Rows {
			id := entity.UnknownKey
			if parents != nil {
				if resolved, ok := parents.Lookup(r); ok {
					id = resolved
				} else {
					unresolved++
				}
			} else {
				unresolved++
			}
			r[spec.Parent.ForeignKey] = id
		}
	}

	return Result{
		Spec:              spec,
		Table:             deduped.Select(spec.LoadColumns()...),
		UnresolvedParents: unresolved,
	}
}

// KeyRows projects the canonical table to the dimension's distinct natural
// keys, derivation applied, for staging into the key resolver.
func KeyRows(silver table.Table, spec entity.DimensionSpec) []table.Row {
	return naturalRows(silver, spec).Select(spec.NaturalKey...).Rows
}

// naturalRows applies the dimension's derivation, drops rows with a fully
// absent natural key and deduplicates on it. Missing parts of a composite
// key become empty strings so the resolver's equality join stays total
// (NULL never equals NULL in SQL).
func naturalRows(silver table.Table, spec entity.DimensionSpec) table.Table {
	rows := lo.Map(silver.Rows, func(r table.Row, _ int) table.Row {
		nr := maps.Clone(r)
		if spec.Derive != nil {
			spec.Derive(nr)
		}
		return nr
	})

	rows = lo.Filter(rows, func(r table.Row, _ int) bool {
		for _, c := range spec.NaturalKey {
			if r[c] != nil {
				return true
			}
		}
		return false
	})

	deduped := table.Table{Columns: silver.Columns, Rows: rows}.DistinctBy(spec.NaturalKey...)
	for _, r := range deduped.Rows {
		for _, c := range spec.NaturalKey {
			if r[c] == nil {
				r[c] = ""
			}
		}
	}
	return deduped
}

// LoadRows renders the built table as positional rows for the bulk loader.
func (r Result) LoadRows() [][]any {
	cols := r.Spec.LoadColumns()
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
