package engine

import (
	"database/sql"
	"fmt"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Catalog lookups run on whichever the caller holds: the pool has a
// single connection, so a lookup during an open transaction must go
// through that transaction.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// listTables returns the user tables in storage order, excluding the
// internal sqlite_* tables.
func listTables(q querier) ([]string, error) {
	rows, err := q.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("query sqlite_master: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// tableColumns returns the ordered column names for table. An unknown
// table yields an empty list, not an error, because PRAGMA table_info
// simply reports no rows for it.
func tableColumns(q querier, table string) ([]string, error) {
	rows, err := q.Query(buildColumnInfo(table))
	if err != nil {
		return nil, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	// table_info rows are (cid, name, type, notnull, dflt_value, pk).
	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scan table_info row: %w", err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}
