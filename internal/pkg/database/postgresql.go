package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

// PoolSettings bounds the connection pool. Zero values fall back to
// defaults suited for the engine's mostly short-lived report queries.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

func NewPostgreSQLDB(dsn string, settings PoolSettings) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if settings.MaxConns == 0 {
		settings.MaxConns = 25
	}
	if settings.MinConns == 0 {
		settings.MinConns = 5
	}
	config.MaxConns = settings.MaxConns
	config.MinConns = settings.MinConns
	if settings.MaxConnLifetime > 0 {
		config.MaxConnLifetime = settings.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

// Querier is satisfied by both pgxpool.Pool and pgx.Tx so repositories can
// run inside or outside a transaction without knowing which.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}
