// Package pipeline sequences one batch through the warehouse stages:
// silver standardization, independent dimensions, key resolution, dependent
// dimensions, facts. The first failure abandons the batch; every write is an
// idempotent upsert, so a retried batch safely restarts from the beginning.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/dimension"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/fact"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/silver"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

type State string

const (
	StateIndependentDims   State = "independent_dims"
	StateKeysForDependents State = "keys_for_dependents"
	StateDependentDims     State = "dependent_dims"
	StateKeysForFacts      State = "keys_for_facts"
	StateFacts             State = "facts"
	StateLoaded            State = "loaded"
	StateFailed            State = "failed"
)

// Store is what the orchestrator needs from the gold store: the two and only
// two operations the pipeline performs against it.
type Store interface {
	Upsert(ctx context.Context, tableName string, columns []string, rows [][]any, conflictColumns []string) (int64, error)
	Resolve(ctx context.Context, dimension, surrogateColumn string, keyColumns []string, keys []table.Row) (*entity.KeyMap, error)
}

type Orchestrator struct {
	store Store
	log   *slog.Logger
}

func New(store Store, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{store: store, log: log}
}

// Run processes one uploaded export end to end. The returned report carries
// a per-stage row count either way; on error the report's status is failed
// and nothing of the batch should be trusted by the caller.
func (o *Orchestrator) Run(ctx context.Context, p entity.RunParams) (entity.Report, error) {
	report := entity.Report{
		RunID:  uuid.NewString(),
		Source: p.SourceLayout,
		RunAt:  p.RunAt,
	}
	state := State("standardize")

	fail := func(err error) (entity.Report, error) {
		report.Status = string(StateFailed)
		report.Error = err.Error()
		o.log.Error("batch failed", "run_id", report.RunID, "stage", string(state), "error", err)
		return report, err
	}

	if err := entity.Validate.Struct(p); err != nil {
		return fail(fmt.Errorf("invalid run parameters: %w", err))
	}

	canonical, err := silver.Standardize(p.File, p.SourceLayout)
	if err != nil {
		return fail(err)
	}
	report.Stages = append(report.Stages, entity.StageResult{
		Stage:   "silver",
		Rows:    int64(len(canonical.Rows)),
		Message: fmt.Sprintf("%d canonical rows standardized", len(canonical.Rows)),
	})
	o.log.Info("silver standardized", "run_id", report.RunID, "rows", len(canonical.Rows))

	state = StateIndependentDims
	if err := o.loadDimensions(ctx, &report, canonical, dimension.Independent(), nil); err != nil {
		return fail(err)
	}

	state = StateKeysForDependents
	parents, err := o.resolveParents(ctx, canonical, dimension.Dependent())
	if err != nil {
		return fail(err)
	}

	state = StateDependentDims
	if err := o.loadDimensions(ctx, &report, canonical, dimension.Dependent(), parents); err != nil {
		return fail(err)
	}

	state = StateKeysForFacts
	keys, err := o.resolveFactKeys(ctx, canonical)
	if err != nil {
		return fail(err)
	}

	state = StateFacts
	for _, spec := range fact.All() {
		built, err := fact.Build(canonical, spec, keys)
		if err != nil {
			return fail(err)
		}
		n, err := o.store.Upsert(ctx, spec.Table, spec.Contract.ColumnNames(), built.LoadRows(), spec.Conflict)
		if err != nil {
			return fail(err)
		}
		report.Stages = append(report.Stages, entity.StageResult{
			Stage:   spec.Table,
			Rows:    n,
			Dropped: built.Dropped,
			Message: fmt.Sprintf("%d rows upserted, %d dropped", n, built.Dropped),
		})
		if built.Dropped > 0 {
			o.log.Warn("fact rows dropped", "run_id", report.RunID, "fact", spec.Table, "dropped", built.Dropped)
		}
	}

	state = StateLoaded
	report.Status = string(StateLoaded)
	o.log.Info("batch loaded", "run_id", report.RunID, "source", p.SourceLayout)
	return report, nil
}

func (o *Orchestrator) loadDimensions(ctx context.Context, report *entity.Report, canonical table.Table, specs []entity.DimensionSpec, parents map[string]*entity.KeyMap) error {
	for _, spec := range specs {
		var parentKeys *entity.KeyMap
		if spec.Parent != nil {
			parentKeys = parents[spec.Parent.Dimension]
		}
		built := dimension.Build(canonical, spec, parentKeys)
		n, err := o.store.Upsert(ctx, spec.Table, spec.LoadColumns(), built.LoadRows(), spec.NaturalKey)
		if err != nil {
			return err
		}
		report.Stages = append(report.Stages, entity.StageResult{
			Stage:      spec.Table,
			Rows:       n,
			Unresolved: built.UnresolvedParents,
			Message:    fmt.Sprintf("%d rows upserted", n),
		})
		if built.UnresolvedParents > 0 {
			o.log.Warn("dimension parents unresolved", "run_id", report.RunID, "dimension", spec.Table, "count", built.UnresolvedParents)
		}
	}
	return nil
}

// resolveParents fetches the key maps the dependent dimensions need, one per
// distinct parent dimension.
func (o *Orchestrator) resolveParents(ctx context.Context, canonical table.Table, dependents []entity.DimensionSpec) (map[string]*entity.KeyMap, error) {
	parents := make(map[string]*entity.KeyMap)
	for _, spec := range dependents {
		ref := spec.Parent
		if ref == nil {
			continue
		}
		if _, done := parents[ref.Dimension]; done {
			continue
		}
		parentSpec, ok := specByTable(ref.Dimension)
		if !ok {
			return nil, fmt.Errorf("dependent dimension %s references unknown parent %s", spec.Table, ref.Dimension)
		}
		keys := dimension.KeyRows(canonical, parentSpec)
		km, err := o.store.Resolve(ctx, ref.Dimension, parentSpec.SurrogateKey, ref.KeyColumns, keys)
		if err != nil {
			return nil, err
		}
		parents[ref.Dimension] = km
	}
	return parents, nil
}

// resolveFactKeys fetches every key map the fact specs join against,
// dependent dimensions included.
func (o *Orchestrator) resolveFactKeys(ctx context.Context, canonical table.Table) (map[string]*entity.KeyMap, error) {
	keys := make(map[string]*entity.KeyMap)
	for _, spec := range fact.All() {
		for _, fk := range spec.ForeignKeys {
			if _, done := keys[fk.Dimension]; done {
				continue
			}
			dimSpec, ok := specByTable(fk.Dimension)
			if !ok {
				return nil, fmt.Errorf("fact %s references unknown dimension %s", spec.Table, fk.Dimension)
			}
			km, err := o.store.Resolve(ctx, fk.Dimension, dimSpec.SurrogateKey, fk.KeyColumns, dimension.KeyRows(canonical, dimSpec))
			if err != nil {
				return nil, err
			}
			keys[fk.Dimension] = km
		}
	}
	return keys, nil
}

func specByTable(tableName string) (entity.DimensionSpec, bool) {
	all := append(dimension.Independent(), dimension.Dependent()...)
	for _, s := range all {
		if s.Table == tableName {
			return s, true
		}
	}
	return entity.DimensionSpec{}, false
}
