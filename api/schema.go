package api

// TableData is the wire shape for a materialized table.
// It is the payload produced by JSON export and by the MCP read tools.
type TableData struct {
	// Table is the name of the table the data came from.
	Table string `json:"table"`
	// Columns are the ordered column headers.
	Columns []string `json:"columns"`
	// Rows are the ordered data rows; cell order matches Columns.
	Rows [][]string `json:"rows,omitempty"`
}

// ReplaceResult reports the outcome of an atomic table replacement.
type ReplaceResult struct {
	// Table is the name of the replaced table.
	Table string `json:"table"`
	// Rows is the number of rows written.
	Rows int `json:"rows"`
	// Columns are the resolved column names the rows were written under.
	Columns []string `json:"columns"`
}
