package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jengzang/solarmap-backend-go/internal/logging"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Open when a read-only database file does not exist
var ErrNotFound = errors.New("database file not found")

// Config holds database configuration
type Config struct {
	Path     string
	ReadOnly bool // open with mode=ro; the file must already exist
}

// Open opens a SQLite database. Read-only handles never create the file.
func Open(cfg Config) (*sql.DB, error) {
	dsn := cfg.Path
	if cfg.ReadOnly {
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cfg.Path)
		}
		dsn = "file:" + (&url.URL{Path: cfg.Path}).EscapedPath() + "?mode=ro"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Path, err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	if !cfg.ReadOnly {
		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Path, err)
	}

	logging.Debug().Str("path", cfg.Path).Bool("read_only", cfg.ReadOnly).Msg("Database opened")
	return db, nil
}

// Transaction executes a function within a database transaction
func Transaction(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// QuoteIdent quotes a table or column name for SQLite
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
