package engine

import "strings"

// SQLite does not accept placeholders for table or column names, so
// identifiers are interpolated into statement text. Two defenses apply:
// callers validate names against the schema catalog before building a
// statement, and every identifier is quoted here with doubled quotes.

// quoteIdentifier quotes a SQL identifier to prevent injection.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteIdentifiers quotes each name in a column list.
func quoteIdentifiers(names []string) []string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdentifier(n)
	}
	return quoted
}

// buildSelectAll builds the full-table read statement.
func buildSelectAll(table string) string {
	return "SELECT * FROM " + quoteIdentifier(table)
}

// buildDeleteAll builds the clear-table statement.
func buildDeleteAll(table string) string {
	return "DELETE FROM " + quoteIdentifier(table)
}

// buildInsert builds a parameterized insert with one placeholder per column.
func buildInsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return "INSERT INTO " + quoteIdentifier(table) +
		" (" + strings.Join(quoteIdentifiers(columns), ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")"
}

// buildColumnInfo builds the column introspection statement.
func buildColumnInfo(table string) string {
	return "PRAGMA table_info(" + quoteIdentifier(table) + ")"
}
