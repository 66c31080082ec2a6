// Package store applies generated DDL to a database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver "pgx"
	_ "github.com/lib/pq"              // PostgreSQL driver "postgres"
	_ "github.com/mattn/go-sqlite3"    // SQLite driver "sqlite3"
)

// Drivers lists the database/sql driver names Open accepts
var Drivers = []string{"sqlite3", "postgres", "pgx"}

// ErrUnsupportedDriver is returned by Open for a driver outside Drivers
var ErrUnsupportedDriver = errors.New("store: unsupported driver")

// Open connects to a database and checks that it is reachable
func Open(driver, dsn string) (*sql.DB, error) {
	if !slices.Contains(Drivers, driver) {
		return nil, fmt.Errorf("%w %q (supported: %v)", ErrUnsupportedDriver, driver, Drivers)
	}
	if dsn == "" {
		return nil, fmt.Errorf("no data source name given for driver %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Apply executes statements in order inside a single transaction. Either
// every statement takes effect or, on the first failure, none does.
func Apply(ctx context.Context, db *sql.DB, stmts []string) (err error) {
	if len(stmts) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
	}()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
