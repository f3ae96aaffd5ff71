package entity

import (
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/schema"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// ParentRef ties a dependent dimension to its parent: rows look the parent
// up by natural key and carry its surrogate id as a foreign-key column.
type ParentRef struct {
	// Dimension is the parent dimension's table name.
	Dimension string
	// KeyColumns are the canonical columns forming the parent's natural key.
	KeyColumns []string
	// ForeignKey is the column attached to the child row.
	ForeignKey string
}

// DimensionSpec declares how one dimension is derived from the canonical
// table and written to the warehouse.
type DimensionSpec struct {
	Table        string
	SurrogateKey string
	NaturalKey   []string
	Attributes   []string
	// Derive applies the dimension's fixed enrichment rules to a canonical
	// row before projection (e.g. brand inferred from the SKU prefix).
	Derive func(table.Row)
	// Parent is set for dependent dimensions only.
	Parent *ParentRef
}

// LoadColumns returns the columns the dimension writes, in load order.
func (s DimensionSpec) LoadColumns() []string {
	cols := append([]string(nil), s.NaturalKey...)
	cols = append(cols, s.Attributes...)
	if s.Parent != nil {
		cols = append(cols, s.Parent.ForeignKey)
	}
	return cols
}

type Reduction string

const (
	ReduceSum   Reduction = "sum"
	ReduceMean  Reduction = "mean"
	ReduceFirst Reduction = "first"
)

// ForeignKey declares one surrogate-key join for a fact: which dimension to
// resolve against, on which canonical columns, and whether an unresolved key
// drops the row (required) or takes the sentinel id.
type ForeignKey struct {
	Column     string
	Dimension  string
	KeyColumns []string
	Required   bool
}

// FactSpec declares one fact table: its grain, its foreign keys, the
// reduction rule per measure column, and the contract the aggregated result
// must satisfy before loading.
type FactSpec struct {
	Table       string
	Grain       []string
	ForeignKeys []ForeignKey
	Reductions  map[string]Reduction
	Contract    schema.Contract
	Conflict    []string
}
