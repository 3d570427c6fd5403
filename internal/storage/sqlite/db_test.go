// ABOUTME: Tests for database lifecycle and contention-safe writes
// ABOUTME: Verifies open/close, default paths, and busy retry behavior
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", db.Path())
	}

	// Schema should be initialized
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM memories").Scan(&count)
	if err != nil {
		t.Fatalf("memories table missing: %v", err)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "memory.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if db.FileSize() <= 0 {
		t.Errorf("FileSize() = %d, want > 0", db.FileSize())
	}
}

func TestDefaultDBPath(t *testing.T) {
	t.Setenv("LOCALMEMORY_DB", "")

	path := DefaultDBPath()
	if !strings.HasSuffix(path, filepath.Join(".localmemory", "memory.db")) {
		t.Errorf("DefaultDBPath() = %q, want ~/.localmemory/memory.db", path)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	t.Setenv("LOCALMEMORY_DB", "/tmp/custom.db")

	if got := DefaultDBPath(); got != "/tmp/custom.db" {
		t.Errorf("DefaultDBPath() = %q, want /tmp/custom.db", got)
	}
}

func TestWithTx_Commits(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	err = db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO memories (id, content) VALUES ('m1', 'hello')")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM memories WHERE id = 'm1'").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	wantErr := errors.New("boom")
	err = db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO memories (id, content) VALUES ('m1', 'hello')"); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTx() error = %v, want %v", err, wantErr)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM memories").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 after rollback", count)
	}
}

func TestIsBusy(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("database is locked (5) (SQLITE_BUSY)"), true},
		{errors.New("database table is locked"), true},
		{fmt.Errorf("wrapped: %w", errors.New("SQLITE_BUSY")), true},
		{errors.New("no such table: missing"), false},
	}

	for _, tt := range tests {
		if got := isBusy(tt.err); got != tt.want {
			t.Errorf("isBusy(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
