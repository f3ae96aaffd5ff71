package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// Resolve returns the persisted surrogate ids for the batch's natural keys.
// The batch's distinct keys are staged and equality-joined against the
// dimension on every key column (composite keys included), so the call
// never scans the full dimension. Batch keys with no persisted match are
// simply absent from the result; the caller decides the sentinel policy.
func (s *Storage) Resolve(ctx context.Context, dimension, surrogateColumn string, keyColumns []string, keys []table.Row) (*entity.KeyMap, error) {
	km := entity.NewKeyMap(keyColumns...)
	distinct := distinctKeys(keys, keyColumns)
	if len(distinct) == 0 {
		return km, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error while starting transaction %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	staging := "batch_keys_" + dimension
	defs := make([]string, len(keyColumns))
	for i, c := range keyColumns {
		defs[i] = c + " TEXT"
	}
	_, err = tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (%s) ON COMMIT DROP", staging, strings.Join(defs, ", "),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create key staging table for %s: %w", dimension, err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{staging}, keyColumns, pgx.CopyFromRows(distinct))
	if err != nil {
		return nil, fmt.Errorf("failed to copy keys into %s: %w", staging, err)
	}

	rows, err := tx.Query(ctx, joinSQL(dimension, staging, surrogateColumn, keyColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve keys against %s: %w", dimension, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		values := make([]string, len(keyColumns))
		dest := make([]any, 0, len(keyColumns)+1)
		dest = append(dest, &id)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan resolved key: %w", err)
		}
		r := make(table.Row, len(keyColumns))
		for i, c := range keyColumns {
			r[c] = values[i]
		}
		km.Put(r, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	rows.Close()

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return km, nil
}

// distinctKeys projects the batch rows to their natural key values, dropping
// rows with a fully absent key and collapsing duplicates.
func distinctKeys(keys []table.Row, keyColumns []string) [][]any {
	seen := make(map[string]bool, len(keys))
	var out [][]any
	for _, r := range keys {
		present := false
		for _, c := range keyColumns {
			if r[c] != nil {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		k := table.CompositeKey(r, keyColumns)
		if seen[k] {
			continue
		}
		seen[k] = true
		values := make([]any, len(keyColumns))
		for i, c := range keyColumns {
			// Missing key parts are staged as empty strings, matching how
			// dimensions store them; a NULL would never join.
			values[i] = table.FormatValue(r[c])
		}
		out = append(out, values)
	}
	return out
}

func joinSQL(dimension, staging, surrogateColumn string, keyColumns []string) string {
	conds := make([]string, len(keyColumns))
	dimCols := make([]string, len(keyColumns))
	for i, c := range keyColumns {
		conds[i] = fmt.Sprintf("d.%s = b.%s", c, c)
		dimCols[i] = "d." + c
	}
	return fmt.Sprintf(
		"SELECT d.%s, %s FROM %s d JOIN %s b ON %s",
		surrogateColumn, strings.Join(dimCols, ", "), dimension, staging, strings.Join(conds, " AND "),
	)
}
