package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Upsert writes a batch into the target table with staging-and-merge
// semantics: rows land in a short-lived staging table shaped like the
// target, then merge with last-writer-wins on every non-key column. The
// whole call is one transaction: either the full batch is visible or none
// of it. The caller must guarantee the batch has at most one row per
// conflict-key combination (dimensions are deduplicated, facts aggregated
// to their grain, before loading).
func (s *Storage) Upsert(ctx context.Context, tableName string, columns []string, rows [][]any, conflictColumns []string) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error while starting transaction %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	staging := "staging_" + tableName
	_, err = tx.Exec(ctx, fmt.Sprintf(
		"CREATE TEMP TABLE %s (LIKE %s INCLUDING DEFAULTS) ON COMMIT DROP", staging, tableName,
	))
	if err != nil {
		return 0, fmt.Errorf("failed to create staging table for %s: %w", tableName, err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{staging}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to copy into %s: %w", staging, err)
	}

	_, err = tx.Exec(ctx, mergeSQL(tableName, staging, columns, conflictColumns))
	if err != nil {
		return 0, fmt.Errorf("failed to merge %s into %s: %w", staging, tableName, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	affected := int64(len(rows))
	slog.Info("batch upserted", "table", tableName, "rows", affected)
	return affected, nil
}

// mergeSQL builds the staged merge statement. Keys already present update
// every non-key column; new keys insert. A target with no non-key columns
// cannot be updated, so conflicting rows are skipped.
func mergeSQL(target, staging string, columns, conflictColumns []string) string {
	keys := make(map[string]bool, len(conflictColumns))
	for _, c := range conflictColumns {
		keys[c] = true
	}
	var updates []string
	for _, c := range columns {
		if !keys[c] {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
		}
	}

	colList := strings.Join(columns, ", ")
	conflictList := strings.Join(conflictColumns, ", ")
	if len(updates) == 0 {
		return fmt.Sprintf(
			"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO NOTHING",
			target, colList, colList, staging, conflictList,
		)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) SELECT %s FROM %s ON CONFLICT (%s) DO UPDATE SET %s",
		target, colList, colList, staging, conflictList, strings.Join(updates, ", "),
	)
}
