// Package engine implements the table synchronization core: schema
// discovery, grid materialization, and atomic full-table replacement for a
// single SQLite database file.
package engine

import (
	"log/slog"
	"time"
)

// Engine owns one database connection at a time and runs every operation
// synchronously on the calling goroutine. Opening a file tears down the
// previous connection first, so an engine instance tracks exactly one
// file. There is no retry logic anywhere: every failure is reported to
// the caller immediately, and any failure inside a commit rolls the
// transaction back before returning.
//
// Concurrent calls against one engine are not serialized here; callers
// that interleave operations (a server loop, for instance) hold their own
// lock around the engine.
type Engine struct {
	// BusyTimeout is applied as a busy_timeout pragma when a file is
	// opened. Zero keeps the driver default.
	BusyTimeout time.Duration
	// JournalMode is applied as a journal_mode pragma when non-empty
	// (delete, truncate, persist, memory, wal, off).
	JournalMode string
	// ReadOnly opens files in read-only mode. Opening a nonexistent path
	// fails instead of creating it, and commits fail at the clear step.
	ReadOnly bool

	conn   *conn
	tables []string
}

// New returns an engine with no open database. The tuning fields above
// are read when Open runs.
func New() *Engine { return &Engine{} }

// Open loads a database file. Any previously open connection is closed
// and discarded first, so Open doubles as reload. The file is validated
// with a trivial query before the engine accepts it; the user table list
// is cached once per successful open.
func (e *Engine) Open(path string) error {
	if e.conn != nil {
		if err := e.conn.close(); err != nil {
			slog.Warn("closing previous connection", "path", e.conn.path, "error", err)
		}
		e.conn = nil
		e.tables = nil
	}

	c, err := openConn(path, connOptions{
		busyTimeout: e.BusyTimeout,
		journalMode: e.JournalMode,
		readOnly:    e.ReadOnly,
	})
	if err != nil {
		return err
	}

	// A metadata failure is "no tables", not a failed open.
	tables, err := listTables(c.db)
	if err != nil {
		slog.Warn("listing tables", "path", path, "error", err)
		tables = nil
	}

	e.conn = c
	e.tables = tables
	slog.Info("database opened",
		"path", path,
		"conn", c.name,
		"tables", len(tables))
	return nil
}

// Close releases the open connection and its handle. Calling Close with
// nothing open is a no-op.
func (e *Engine) Close() error {
	if e.conn == nil {
		return nil
	}
	c := e.conn
	e.conn = nil
	e.tables = nil
	err := c.close()
	slog.Info("database closed", "path", c.path, "conn", c.name)
	return err
}

// IsOpen reports whether a database is currently open.
func (e *Engine) IsOpen() bool { return e.conn != nil }

// Path returns the open file's path, or the empty string when closed.
func (e *Engine) Path() string {
	if e.conn == nil {
		return ""
	}
	return e.conn.path
}

// ListTables returns the user tables of the open database in storage
// order. It is empty when the file has no tables or nothing is open.
func (e *Engine) ListTables() []string { return e.tables }

func (e *Engine) hasTable(name string) bool {
	for _, t := range e.tables {
		if t == name {
			return true
		}
	}
	return false
}

// columns fetches the current column list for table, re-queried on every
// call because the catalog only caches table names. Nil when nothing is
// open or introspection fails; callers treat that as "cannot proceed".
func (e *Engine) columns(table string) []string {
	if e.conn == nil {
		return nil
	}
	cols, err := tableColumns(e.conn.db, table)
	if err != nil {
		slog.Warn("listing columns", "table", table, "error", err)
		return nil
	}
	return cols
}
