package engine

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func createTestDB(t *testing.T, stmts ...string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}
	return dbPath
}

func createUsersDB(t *testing.T) string {
	t.Helper()
	return createTestDB(t,
		"CREATE TABLE users (id TEXT, name TEXT)",
		"INSERT INTO users (id, name) VALUES ('1', 'Ann'), ('2', 'Ben')",
	)
}

func openTestEngine(t *testing.T, path string) *Engine {
	t.Helper()
	e := New()
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestEngine_OpenListsUserTables(t *testing.T) {
	// widgets uses AUTOINCREMENT so sqlite_sequence exists in
	// sqlite_master; it must not show up in the listing.
	dbPath := createTestDB(t,
		"CREATE TABLE widgets (id INTEGER PRIMARY KEY AUTOINCREMENT, label TEXT)",
		"CREATE TABLE accounts (id TEXT, balance TEXT)",
		"INSERT INTO widgets (label) VALUES ('a')",
	)

	e := openTestEngine(t, dbPath)

	got := e.ListTables()
	want := []string{"widgets", "accounts"}
	if len(got) != len(want) {
		t.Fatalf("ListTables = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListTables[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEngine_OpenInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(path, []byte("this is not a database file"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New()
	err := e.Open(path)
	if !errors.Is(err, ErrInvalidDatabase) {
		t.Fatalf("Open(garbage) err = %v, want ErrInvalidDatabase", err)
	}
	if e.IsOpen() {
		t.Error("engine should not be open after a failed Open")
	}
}

func TestEngine_OpenCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")

	e := New()
	if err := e.Open(path); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = e.Close() }()

	if !e.IsOpen() {
		t.Fatal("engine should be open")
	}
	if e.Path() != path {
		t.Errorf("Path = %q, want %q", e.Path(), path)
	}
	if got := e.ListTables(); len(got) != 0 {
		t.Errorf("fresh database tables = %v, want none", got)
	}
}

func TestEngine_ReadOnlyRefusesMissingFile(t *testing.T) {
	e := New()
	e.ReadOnly = true

	err := e.Open(filepath.Join(t.TempDir(), "absent.db"))
	if !errors.Is(err, ErrInvalidDatabase) {
		t.Fatalf("read-only Open(missing) err = %v, want ErrInvalidDatabase", err)
	}
}

func TestEngine_ReopenSwitchesDatabase(t *testing.T) {
	first := createUsersDB(t)
	second := createTestDB(t, "CREATE TABLE items (sku TEXT)")

	e := openTestEngine(t, first)
	if err := e.Open(second); err != nil {
		t.Fatal(err)
	}

	if e.Path() != second {
		t.Errorf("Path = %q, want %q", e.Path(), second)
	}
	got := e.ListTables()
	if len(got) != 1 || got[0] != "items" {
		t.Errorf("ListTables after reopen = %v, want [items]", got)
	}
}

func TestEngine_CloseIsIdempotent(t *testing.T) {
	e := openTestEngine(t, createUsersDB(t))

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second Close should be a no-op, got: %v", err)
	}

	if e.IsOpen() {
		t.Error("IsOpen after Close = true, want false")
	}
	if e.Path() != "" {
		t.Errorf("Path after Close = %q, want empty", e.Path())
	}
	if got := e.ListTables(); len(got) != 0 {
		t.Errorf("ListTables after Close = %v, want none", got)
	}
}

func TestEngine_ConnectionNamesAreUnique(t *testing.T) {
	dbPath := createUsersDB(t)

	e1 := openTestEngine(t, dbPath)
	e2 := openTestEngine(t, dbPath)

	if e1.conn.name == e2.conn.name {
		t.Errorf("both handles named %q, want distinct names", e1.conn.name)
	}
}

// ---------------------------------------------------------------------------
// Open-time tuning
// ---------------------------------------------------------------------------

func TestEngine_JournalModeApplied(t *testing.T) {
	e := New()
	e.JournalMode = "wal"
	require.NoError(t, e.Open(createUsersDB(t)))
	defer func() { _ = e.Close() }()

	var mode string
	require.NoError(t, e.conn.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestEngine_JournalModeRejected(t *testing.T) {
	e := New()
	e.JournalMode = "bogus"

	err := e.Open(createUsersDB(t))
	if !errors.Is(err, ErrOpenFailed) {
		t.Fatalf("Open with bogus journal mode err = %v, want ErrOpenFailed", err)
	}
}

func TestEngine_BusyTimeoutApplied(t *testing.T) {
	e := New()
	e.BusyTimeout = 250 * time.Millisecond
	require.NoError(t, e.Open(createUsersDB(t)))
	defer func() { _ = e.Close() }()

	var ms int
	require.NoError(t, e.conn.db.QueryRow("PRAGMA busy_timeout").Scan(&ms))
	assert.Equal(t, 250, ms)
}
