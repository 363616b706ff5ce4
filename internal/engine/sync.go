package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// columnSource tags where the column name for one insert position came
// from.
type columnSource int

const (
	// fromGrid means the grid carried a non-empty header at the position.
	fromGrid columnSource = iota
	// fromCatalog means the header was blank and the table's own column
	// name at the same position filled in.
	fromCatalog
	// synthesized means neither had a name and a positional placeholder
	// was generated.
	synthesized
)

type resolvedColumn struct {
	name   string
	source columnSource
}

// resolveColumns produces exactly one column name per grid position.
// Resolution is positional and ordered: a non-empty grid header wins,
// then the catalog name at the same index, then a Column_<n> placeholder
// (1-based).
func resolveColumns(headers, catalog []string, width int) []resolvedColumn {
	out := make([]resolvedColumn, width)
	for i := 0; i < width; i++ {
		switch {
		case i < len(headers) && headers[i] != "":
			out[i] = resolvedColumn{name: headers[i], source: fromGrid}
		case i < len(catalog) && catalog[i] != "":
			out[i] = resolvedColumn{name: catalog[i], source: fromCatalog}
		default:
			out[i] = resolvedColumn{name: fmt.Sprintf("Column_%d", i+1), source: synthesized}
		}
	}
	return out
}

// CommitGrid atomically replaces the stored contents of table with the
// rows of grid. The table is cleared and refilled inside one transaction;
// any failure at any step rolls the whole transaction back, so the stored
// rows are either fully replaced or untouched. There is no partial
// application and no retry.
func (e *Engine) CommitGrid(table string, grid *Grid) error {
	if e.conn == nil {
		return fmt.Errorf("%w: no open database", ErrInvalidRequest)
	}
	if table == "" {
		return fmt.Errorf("%w: empty table name", ErrInvalidRequest)
	}
	if grid == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidRequest)
	}
	if !e.hasTable(table) {
		return fmt.Errorf("%w: unknown table %q", ErrInvalidRequest, table)
	}

	start := time.Now()
	tx, err := e.conn.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin for %s: %w", ErrTransactionUnavailable, table, err)
	}
	defer func() { _ = tx.Rollback() }() // safe to ignore (no-op once committed)

	if _, err := tx.Exec(buildDeleteAll(table)); err != nil {
		return fmt.Errorf("%w: clear %s: %w", ErrDeleteFailed, table, err)
	}

	width := grid.Width()
	if width == 0 {
		// Nothing to insert; committing here leaves the table empty.
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("%w: commit %s: %w", ErrCommitFailed, table, err)
		}
		slog.Info("table replaced", "table", table, "rows", 0, "elapsed", time.Since(start))
		return nil
	}

	// The column lookup has to run on the transaction: the pool is pinned
	// to a single connection, so a pool-level query here would sit behind
	// the open transaction forever.
	catalog, err := tableColumns(tx, table)
	if err != nil {
		slog.Warn("listing columns during commit", "table", table, "error", err)
		catalog = nil
	}
	resolved := resolveColumns(grid.Headers, catalog, width)
	names := make([]string, width)
	synth := 0
	for i, rc := range resolved {
		names[i] = rc.name
		if rc.source == synthesized {
			synth++
		}
	}
	if synth > 0 {
		slog.Debug("synthesized column names", "table", table, "count", synth)
	}

	stmt, err := tx.Prepare(buildInsert(table, names))
	if err != nil {
		return fmt.Errorf("%w: prepare insert for %s: %w", ErrInsertFailed, table, err)
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	args := make([]any, width)
	for i, row := range grid.Rows {
		for c := 0; c < width; c++ {
			if c < len(row) {
				args[c] = row[c]
			} else {
				args[c] = ""
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return &InsertError{Row: i, Err: fmt.Errorf("insert into %s: %w", table, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %w", ErrCommitFailed, table, err)
	}
	slog.Info("table replaced",
		"table", table,
		"rows", len(grid.Rows),
		"columns", width,
		"elapsed", time.Since(start))
	return nil
}

// InsertRow appends a single row to table as one autocommit statement,
// outside any grid replacement. Values bind positionally against the
// table's current columns; missing values bind as empty strings and
// surplus values are dropped.
func (e *Engine) InsertRow(table string, values []string) error {
	if e.conn == nil {
		return fmt.Errorf("%w: no open database", ErrInvalidRequest)
	}
	if table == "" {
		return fmt.Errorf("%w: empty table name", ErrInvalidRequest)
	}
	if !e.hasTable(table) {
		return fmt.Errorf("%w: unknown table %q", ErrInvalidRequest, table)
	}
	catalog := e.columns(table)
	if len(catalog) == 0 {
		return fmt.Errorf("%w: no columns for table %q", ErrSchemaUnavailable, table)
	}

	args := make([]any, len(catalog))
	for i := range catalog {
		if i < len(values) {
			args[i] = values[i]
		} else {
			args[i] = ""
		}
	}
	if _, err := e.conn.db.Exec(buildInsert(table, catalog), args...); err != nil {
		return fmt.Errorf("%w: insert into %s: %w", ErrInsertFailed, table, err)
	}
	slog.Info("row inserted", "table", table, "columns", len(catalog))
	return nil
}
