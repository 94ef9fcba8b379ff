// Package driver connects the storefront to its backing services.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPool is the part of a pgx connection pool the storefront uses.
type PostgresPool interface {
	// BeginTx starts a new transaction and returns a Tx.
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)

	// Ping acquires a connection and checks the server is reachable.
	Ping(ctx context.Context) error

	// Close closes the pool and all its connections.
	Close()
}

// DB holds the driver connection pool
type DB struct {
	Pool PostgresPool
}

// maxOpenDbConn defines the maximum number of open driver connections.
// The catalog is read once at startup, so a small pool is enough.
const maxOpenDbConn = 4

// maxDbLifetime is the maximum lifetime of a driver connection in the pool.
const maxDbLifetime = 5 * time.Minute

// ConnectSQL parses dsn, opens a pgx pool with the limits above and checks
// that a connection can be acquired.
func ConnectSQL(ctx context.Context, dsn string) (*DB, error) {

	// parse the config
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	config.MaxConns = int32(maxOpenDbConn)
	config.MaxConnLifetime = maxDbLifetime

	// create the pool
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err = testDB(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// testDB pings the server through the pool
func testDB(ctx context.Context, p PostgresPool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.Ping(ctx)
}
