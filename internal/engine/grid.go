package engine

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Grid is a table's materialized content: ordered rows of text cells under
// ordered column headers. The engine treats every cell as text; storage
// typing is the database's concern. A Grid is produced by LoadTable,
// mutated by exactly one caller at a time, and consumed whole by
// CommitGrid. The engine never modifies a Grid it was handed.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// NumRows returns the number of data rows.
func (g *Grid) NumRows() int { return len(g.Rows) }

// Width returns the column count: the header count, or the first row's
// cell count when no headers are present.
func (g *Grid) Width() int {
	if len(g.Headers) > 0 {
		return len(g.Headers)
	}
	if len(g.Rows) > 0 {
		return len(g.Rows[0])
	}
	return 0
}

// Cell returns the cell at (row, col), or the empty string when the row is
// shorter than the grid width.
func (g *Grid) Cell(row, col int) string {
	r := g.Rows[row]
	if col < len(r) {
		return r[col]
	}
	return ""
}

// LoadTable materializes the full content of a table into a fresh Grid.
// Headers come from the schema catalog; if the catalog reports no columns
// the load fails with ErrSchemaUnavailable. Read errors fail with
// ErrQueryFailed carrying the driver diagnostic. Loading never mutates
// storage.
func (e *Engine) LoadTable(table string) (*Grid, error) {
	start := time.Now()

	cols := e.columns(table)
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no columns for table %q", ErrSchemaUnavailable, table)
	}

	rows, err := e.conn.db.Query(buildSelectAll(table))
	if err != nil {
		return nil, fmt.Errorf("%w: select %s: %w", ErrQueryFailed, table, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	// Reusable per-row scan buffers. Everything scans through NullString:
	// numerics render as their textual form, NULL as the empty string.
	scanVals := make([]sql.NullString, len(cols))
	scanPtrs := make([]any, len(cols))
	for i := range scanVals {
		scanPtrs[i] = &scanVals[i]
	}

	grid := &Grid{Headers: append([]string(nil), cols...)}
	for rows.Next() {
		if err := rows.Scan(scanPtrs...); err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", ErrQueryFailed, err)
		}
		row := make([]string, len(cols))
		for i, v := range scanVals {
			if v.Valid {
				row[i] = v.String
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", ErrQueryFailed, err)
	}

	slog.Info("table loaded",
		"table", table,
		"rows", len(grid.Rows),
		"elapsed", time.Since(start))

	return grid, nil
}
