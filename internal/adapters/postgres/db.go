package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waheedridwan/geopoints/internal/core/ports"
)

// Querier is the slice of pgx shared by *pgxpool.Pool and pgx.Tx, so the
// same repository code runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB wraps pgxpool.Pool and provides a shared connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB connection pool.
func New(ctx context.Context, dsn string, maxConns int32) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases pool resources.
func (db *DB) Close() {
	db.Pool.Close()
}

// Do implements ports.UnitOfWork: fn runs against tx-scoped repositories,
// committing on nil and rolling back on error or panic.
func (db *DB) Do(ctx context.Context, fn func(r ports.Repositories) error) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(&txRepos{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// txRepos hands out repositories bound to one transaction.
type txRepos struct {
	q Querier
}

func (t *txRepos) Points() ports.PointRepository        { return &PointRepo{q: t.q} }
func (t *txRepos) Categories() ports.CategoryRepository { return &CategoryRepo{q: t.q} }
func (t *txRepos) Users() ports.UserRepository          { return &UserRepo{q: t.q} }
