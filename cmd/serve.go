package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/sqlgrid/api"
	"github.com/agentic-research/sqlgrid/internal/engine"
)

var serveCmd = &cobra.Command{
	Use:   "serve [database]",
	Short: "Serve a database to MCP clients over stdio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = eng.Close() }()

		gs := &gridServer{eng: eng}
		return server.ServeStdio(gs.mcpServer())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// gridServer exposes one open database to MCP clients. The engine runs
// one operation at a time, so every tool call takes the mutex.
type gridServer struct {
	mu  sync.Mutex
	eng *engine.Engine
}

func (gs *gridServer) mcpServer() *server.MCPServer {
	s := server.NewMCPServer("sqlgrid", version,
		server.WithToolCapabilities(false),
	)

	s.AddTool(mcp.NewTool("list_tables",
		mcp.WithDescription("List the user tables in the open database."),
	), gs.handleListTables)

	s.AddTool(mcp.NewTool("read_table",
		mcp.WithDescription("Read a table as columns and rows of text. An optional JSONPath filters the rows."),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table to read."),
		),
		mcp.WithString("jsonpath",
			mcp.Description(`JSONPath applied to the row objects, e.g. $[?(@.name == 'Ann')].`),
		),
	), gs.handleReadTable)

	s.AddTool(mcp.NewTool("replace_table",
		mcp.WithDescription("Replace a table's contents in one transaction. On any failure the stored rows are left untouched."),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table to replace."),
		),
		mcp.WithString("data",
			mcp.Required(),
			mcp.Description(`JSON object with "columns" (array of column names) and "rows" (array of cell arrays).`),
		),
	), gs.handleReplaceTable)

	s.AddTool(mcp.NewTool("insert_row",
		mcp.WithDescription("Append a single row to a table."),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table to append to."),
		),
		mcp.WithString("values",
			mcp.Required(),
			mcp.Description("JSON array of cell values in column order."),
		),
	), gs.handleInsertRow)

	return s
}

// --- Business methods (MCP-free, used by the handlers below) ---

func (gs *gridServer) listTables() []string {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.eng.ListTables()
}

// readTable materializes a table as a JSON document. A non-empty
// selector converts the rows to objects keyed by column name, applies
// the JSONPath, and returns whatever it matched.
func (gs *gridServer) readTable(table, selector string) (string, error) {
	gs.mu.Lock()
	grid, err := gs.eng.LoadTable(table)
	gs.mu.Unlock()
	if err != nil {
		return "", err
	}

	if selector == "" {
		return oj.JSON(api.TableData{
			Table:   table,
			Columns: grid.Headers,
			Rows:    grid.Rows,
		}, 2), nil
	}

	x, err := jp.ParseString(selector)
	if err != nil {
		return "", fmt.Errorf("invalid jsonpath %q: %w", selector, err)
	}
	return oj.JSON(x.Get(rowObjects(grid)), 2), nil
}

func (gs *gridServer) replaceTable(table, data string) (*api.ReplaceResult, error) {
	payload, err := parseTablePayload(data)
	if err != nil {
		return nil, err
	}
	grid := &engine.Grid{Headers: payload.Columns, Rows: payload.Rows}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	if err := gs.eng.CommitGrid(table, grid); err != nil {
		return nil, err
	}
	return &api.ReplaceResult{Table: table, Rows: grid.NumRows(), Columns: payload.Columns}, nil
}

func (gs *gridServer) insertRow(table, values string) error {
	v, err := oj.ParseString(values)
	if err != nil {
		return fmt.Errorf("parse values: %w", err)
	}
	cells, err := stringSlice(v)
	if err != nil {
		return fmt.Errorf("parse values: %w", err)
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.eng.InsertRow(table, cells)
}

// rowObjects converts a grid to a slice of maps keyed by column name so
// JSONPath expressions can address cells by header.
func rowObjects(grid *engine.Grid) []any {
	width := grid.Width()
	out := make([]any, grid.NumRows())
	for r := range out {
		row := make(map[string]any, width)
		for c := 0; c < width; c++ {
			name := fmt.Sprintf("Column_%d", c+1)
			if c < len(grid.Headers) && grid.Headers[c] != "" {
				name = grid.Headers[c]
			}
			row[name] = grid.Cell(r, c)
		}
		out[r] = row
	}
	return out
}

// parseTablePayload decodes {"columns": [...], "rows": [[...], ...]}.
// Scalar cells of any JSON type are accepted and stored as text.
func parseTablePayload(data string) (*api.TableData, error) {
	v, err := oj.ParseString(data)
	if err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse data: want a JSON object, got %T", v)
	}

	var td api.TableData
	if td.Columns, err = stringSlice(obj["columns"]); err != nil {
		return nil, fmt.Errorf("parse columns: %w", err)
	}
	if td.Rows, err = rowSlices(obj["rows"]); err != nil {
		return nil, fmt.Errorf("parse rows: %w", err)
	}
	return &td, nil
}

func stringSlice(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want an array, got %T", v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		switch item.(type) {
		case []any, map[string]any:
			return nil, fmt.Errorf("element %d: want a scalar, got %T", i, item)
		}
		out[i] = cellString(item)
	}
	return out, nil
}

func rowSlices(v any) ([][]string, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want an array, got %T", v)
	}
	out := make([][]string, len(items))
	for i, item := range items {
		row, err := stringSlice(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = row
	}
	return out, nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// --- MCP handlers ---

func (gs *gridServer) handleListTables(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tables := gs.listTables()
	if tables == nil {
		tables = []string{}
	}
	return mcp.NewToolResultText(oj.JSON(tables, 2)), nil
}

func (gs *gridServer) handleReadTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := req.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := gs.readTable(table, req.GetString("jsonpath", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func (gs *gridServer) handleReplaceTable(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := req.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := req.RequireString("data")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := gs.replaceTable(table, data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(oj.JSON(res, 2)), nil
}

func (gs *gridServer) handleInsertRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := req.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	values, err := req.RequireString("values")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := gs.insertRow(table, values); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("inserted 1 row into %s", table)), nil
}
