// Package database opens the pgx pool the postgres store runs on.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// minConns keeps a couple of warm connections so the readiness probe
// and the first bundle after an idle stretch skip connection setup.
const minConns = 2

// NewPool connects to PostgreSQL and verifies the connection before
// returning. Bundle execution holds FOR UPDATE row locks for the
// handful of statements inside one transaction, so connections cycle
// quickly; maxIdle and maxLife mostly matter for recycling through
// server-side restarts.
func NewPool(ctx context.Context, connString string, maxConns int32, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.MinConns = minConns
	cfg.MaxConnIdleTime = maxIdle
	cfg.MaxConnLifetime = maxLife

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Default().Info("Connected to database", "max_conns", maxConns)
	return pool, nil
}
