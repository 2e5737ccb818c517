package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"legal-docs-workers/internal/common/config"
	"legal-docs-workers/internal/common/errors"

	_ "github.com/lib/pq"
)

const (
	defaultMaxOpenConns = 10
	connMaxLifetime     = 5 * time.Minute
)

// PostgresClient holds the pool the record repository reads from. Workers
// only ever read records, so the pool stays small.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the pool. No connection is made until first use or Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, errors.NewDatabaseConnectionFailedError(err)
	}
	configurePool(db, cfg)
	return &PostgresClient{DB: db}, nil
}

// configurePool keeps idle connections at or below the open limit.
func configurePool(db *sql.DB, cfg config.PostgresConfig) {
	maxOpen := cfg.MaxConnections
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxLifetime)
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return nil
}

// CheckRecordsTable fails when table cannot be resolved on the search path.
func (c *PostgresClient) CheckRecordsTable(ctx context.Context, table string) error {
	var resolved sql.NullString
	err := c.DB.QueryRowContext(ctx, `SELECT to_regclass($1)::text`, table).Scan(&resolved)
	if err != nil {
		return errors.NewQueryExecutionFailedError("records_table_check", err)
	}
	if !resolved.Valid {
		return errors.NewQueryExecutionFailedError("records_table_check",
			fmt.Errorf("table %q does not exist", table))
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
