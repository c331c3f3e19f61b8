package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := Open(Config{Path: filepath.Join(t.TempDir(), "absent.db"), ReadOnly: true})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Open() error = %v, want ErrNotFound", err)
	}
}

func TestMigrationsAndReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parcels.db")
	db, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	migrations := []Migration{
		{Version: 2, Name: "seed", SQL: `INSERT INTO items (name) VALUES ('a'), ('b')`},
		{Version: 1, Name: "create_items", SQL: `CREATE TABLE items (name TEXT NOT NULL)`},
	}
	mgr := NewMigrationManager(db)
	if err := mgr.RunMigrations(migrations); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}
	// second run must be a no-op
	if err := mgr.RunMigrations(migrations); err != nil {
		t.Fatalf("RunMigrations() second run error = %v", err)
	}

	applied, err := mgr.GetAppliedMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if !applied[1] || !applied[2] || len(applied) != 2 {
		t.Errorf("applied = %v, want versions 1 and 2", applied)
	}
	db.Close()

	ro, err := Open(Config{Path: path, ReadOnly: true})
	if err != nil {
		t.Fatalf("Open(read-only) error = %v", err)
	}
	defer ro.Close()

	var n int
	if err := ro.QueryRow("SELECT COUNT(*) FROM items").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("row count = %d, want 2", n)
	}
	if _, err := ro.Exec("INSERT INTO items (name) VALUES ('c')"); err == nil {
		t.Error("write through read-only handle should fail")
	}
}

func TestTransactionRollback(t *testing.T) {
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "tx.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t (v INTEGER)"); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err = Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO t VALUES (1)"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v, want boom", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM t").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("row count after rollback = %d, want 0", n)
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"parcels", `"parcels"`},
		{"Bairros", `"Bairros"`},
		{`we"ird`, `"we""ird"`},
	}
	for _, tt := range tests {
		if got := QuoteIdent(tt.input); got != tt.expected {
			t.Errorf("QuoteIdent(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}
