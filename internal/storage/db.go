// Package storage keeps the merged transaction history and the stock split
// table in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection.
type DB struct {
	conn *sql.DB
	path string
	name string // for logging
}

// Config holds database configuration.
type Config struct {
	Path string
	Name string
}

// New opens the database at cfg.Path, creating its directory when needed.
func New(cfg Config) (*DB, error) {
	// file: URIs are used for in-memory databases
	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}
	if cfg.Name == "" {
		cfg.Name = "tracker"
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}
	configureConnectionPool(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{conn: conn, path: cfg.Path, name: cfg.Name}, nil
}

func buildConnectionString(path string) string {
	connStr := path + "?_pragma=journal_mode(WAL)"
	connStr += "&_pragma=synchronous(FULL)"
	connStr += "&_pragma=busy_timeout(5000)"
	connStr += "&_pragma=foreign_keys(1)"
	return connStr
}

func configureConnectionPool(conn *sql.DB) {
	// a CLI run holds one writer at a time
	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB for repositories.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the database file name without directory and extension.
func (db *DB) Name() string {
	return db.name
}

// Path returns the database file path as configured.
func (db *DB) Path() string {
	return db.path
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if err := Migrate(ctx, db.conn); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", db.name, err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS simple_transactions (
	transaction_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	import_id        TEXT NOT NULL,
	account          TEXT NOT NULL,
	symbol           TEXT NOT NULL,
	transaction_type TEXT NOT NULL,
	amount           REAL NOT NULL,
	open_price       REAL NOT NULL,
	commission       REAL NOT NULL DEFAULT 0,
	open_date        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stock_splits (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol_namespace TEXT NOT NULL,
	symbol           TEXT NOT NULL,
	event_date       TEXT NOT NULL,
	numerator        INTEGER NOT NULL,
	denominator      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stock_splits_symbol ON stock_splits(symbol_namespace, symbol, event_date);
`

// Migrate applies the schema on any SQLite connection.
func Migrate(ctx context.Context, conn *sql.DB) error {
	return WithTransaction(ctx, conn, func(tx *sql.Tx) error {
		for _, stmt := range strings.Split(schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// WithTransaction runs fn inside a transaction. The transaction is rolled back
// when fn returns an error or panics, and committed otherwise.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", p)
		} else if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("transaction failed: %w (rollback also failed: %v)", err, rollbackErr)
			} else {
				err = fmt.Errorf("transaction failed: %w", err)
			}
		} else if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", commitErr)
		}
	}()

	err = fn(tx)
	return err
}
