package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/config"
)

// ErrNoDatabase is returned by Ping when the service runs without Postgres.
var ErrNoDatabase = errors.New("postgres not configured")

// Postgres wraps the pgx pool holding accounts, profiles, documents,
// notifications and categories. A nil pool selects the in-memory store.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres opens and pings the pool. An empty DSN is not an error: the
// caller falls back to the in-memory store.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not set; using the in-memory store")
		return &Postgres{}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse POSTGRES_DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("host", poolCfg.ConnConfig.Host),
		zap.String("database", poolCfg.ConnConfig.Database),
		zap.Int32("max_conns", poolCfg.MaxConns))
	return &Postgres{Pool: pool}, nil
}

// InMemory reports whether no database is configured.
func (p *Postgres) InMemory() bool {
	return p == nil || p.Pool == nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p.InMemory() {
		return ErrNoDatabase
	}
	return p.Pool.Ping(ctx)
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if !p.InMemory() {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool, or nil in in-memory mode.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p.InMemory() {
		return nil
	}
	return p.Pool
}
