package engine

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// journalModes are the journal_mode pragma values the engine will apply.
// Pragma values cannot be parameterized, so anything else is rejected
// before it reaches statement text.
var journalModes = map[string]bool{
	"DELETE":   true,
	"TRUNCATE": true,
	"PERSIST":  true,
	"MEMORY":   true,
	"WAL":      true,
	"OFF":      true,
}

// conn is the handle to one open database file. Each handle carries a
// process-unique name so independent engine instances never collide;
// the name is an internal detail, surfaced only in logs.
type conn struct {
	db   *sql.DB
	path string
	name string
}

// connOptions is the tuning applied when a handle is opened.
type connOptions struct {
	busyTimeout time.Duration
	journalMode string
	readOnly    bool
}

// openConn opens path, validates it with a trivial query, and applies the
// configured pragmas. The pool is pinned to a single connection so pragma
// state sticks and the one-connection-per-file model holds at the driver
// level.
func openConn(path string, opts connOptions) (*conn, error) {
	dsn := path
	if opts.readOnly {
		// mode=ro is only honored in URI form. It also stops SQLite from
		// creating a missing file, so read-only opens of absent paths fail
		// instead of minting an empty database.
		dsn = "file:" + path + "?mode=ro"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %w", ErrOpenFailed, path, err)
	}
	db.SetMaxOpenConns(1)

	// sql.Open is lazy, so this is the first statement to touch the file
	// and where a non-database file (or an unreadable one) surfaces.
	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
		_ = db.Close() // ignore error
		return nil, fmt.Errorf("%w: validate %s: %w", ErrInvalidDatabase, path, err)
	}

	if opts.busyTimeout > 0 {
		stmt := fmt.Sprintf("PRAGMA busy_timeout = %d", opts.busyTimeout.Milliseconds())
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close() // ignore error
			return nil, fmt.Errorf("%w: set busy_timeout: %w", ErrOpenFailed, err)
		}
	}
	if opts.journalMode != "" {
		mode := strings.ToUpper(opts.journalMode)
		if !journalModes[mode] {
			_ = db.Close() // ignore error
			return nil, fmt.Errorf("%w: unsupported journal mode %q", ErrOpenFailed, opts.journalMode)
		}
		if _, err := db.Exec("PRAGMA journal_mode = " + mode); err != nil {
			_ = db.Close() // ignore error
			return nil, fmt.Errorf("%w: set journal_mode: %w", ErrOpenFailed, err)
		}
	}

	return &conn{
		db:   db,
		path: path,
		name: "sqlgrid_" + uuid.NewString(),
	}, nil
}

// close releases the handle. Safe on a nil receiver.
func (c *conn) close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}
