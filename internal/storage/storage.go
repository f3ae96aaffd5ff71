// Package storage is the gold store. The pipeline touches Postgres through
// exactly two operations: the idempotent bulk upsert and the surrogate key
// resolution, both implemented as a single transaction over a staged batch.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/config"
)

// DBPool is the slice of pgxpool the store needs, so tests can swap in a
// pgxmock pool.
type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

type Storage struct {
	pool DBPool
}

func NewStorage(cfg *config.Storage) (*Storage, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// NewWithPool wires an existing pool, used by tests.
func NewWithPool(pool DBPool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
