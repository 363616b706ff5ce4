package cmd

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/agentic-research/sqlgrid/internal/engine"
)

// testServer opens a gridServer on a fresh database holding a small
// users table.
func testServer(t *testing.T) *gridServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id TEXT, name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO users VALUES ('1', 'Ann'), ('2', 'Ben')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	eng := engine.New()
	require.NoError(t, eng.Open(path))
	t.Cleanup(func() { _ = eng.Close() })
	return &gridServer{eng: eng}
}

func TestGridServer_ListTables(t *testing.T) {
	gs := testServer(t)
	assert.Equal(t, []string{"users"}, gs.listTables())
}

func TestGridServer_ReadTable(t *testing.T) {
	gs := testServer(t)

	doc, err := gs.readTable("users", "")
	require.NoError(t, err)

	v, err := oj.ParseString(doc)
	require.NoError(t, err)
	obj, ok := v.(map[string]any)
	require.True(t, ok, "want a JSON object, got %T", v)

	assert.Equal(t, "users", obj["table"])
	assert.Equal(t, []any{"id", "name"}, obj["columns"])
	rows, ok := obj["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"1", "Ann"}, rows[0])
	assert.Equal(t, []any{"2", "Ben"}, rows[1])
}

func TestGridServer_ReadTableJSONPath(t *testing.T) {
	gs := testServer(t)

	doc, err := gs.readTable("users", `$[?(@.name == 'Ann')].id`)
	require.NoError(t, err)

	v, err := oj.ParseString(doc)
	require.NoError(t, err)
	assert.Equal(t, []any{"1"}, v)
}

func TestGridServer_ReadTableBadJSONPath(t *testing.T) {
	gs := testServer(t)

	_, err := gs.readTable("users", "$[?(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jsonpath")
}

func TestGridServer_ReadTableUnknown(t *testing.T) {
	gs := testServer(t)

	_, err := gs.readTable("missing", "")
	assert.ErrorIs(t, err, engine.ErrSchemaUnavailable)
}

func TestGridServer_ReplaceTable(t *testing.T) {
	gs := testServer(t)

	data := `{"columns": ["id", "name"], "rows": [["1", "Anna"], ["2", "Ben"], ["3", "Cy"]]}`
	res, err := gs.replaceTable("users", data)
	require.NoError(t, err)
	assert.Equal(t, "users", res.Table)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, []string{"id", "name"}, res.Columns)

	grid, err := gs.eng.LoadTable("users")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "Anna"}, {"2", "Ben"}, {"3", "Cy"}}, grid.Rows)
}

func TestGridServer_ReplaceTableBadPayload(t *testing.T) {
	gs := testServer(t)

	for _, data := range []string{
		"not json",
		`[1, 2]`,
		`{"columns": "id"}`,
		`{"rows": [{"a": 1}]}`,
	} {
		_, err := gs.replaceTable("users", data)
		assert.Error(t, err, "payload %q", data)
	}

	// None of the failed calls may touch the stored rows.
	grid, err := gs.eng.LoadTable("users")
	require.NoError(t, err)
	assert.Equal(t, 2, grid.NumRows())
}

func TestGridServer_ReplaceTableWithoutColumns(t *testing.T) {
	gs := testServer(t)

	res, err := gs.replaceTable("users", `{"rows": [["9", "Zed"]]}`)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)

	// Catalog column names carry the insert when the payload names none.
	grid, err := gs.eng.LoadTable("users")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"9", "Zed"}}, grid.Rows)
}

func TestGridServer_ReplaceTableCoercesScalars(t *testing.T) {
	gs := testServer(t)

	data := `{"columns": ["id", "name"], "rows": [[1, null]]}`
	res, err := gs.replaceTable("users", data)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)

	grid, err := gs.eng.LoadTable("users")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", ""}}, grid.Rows)
}

func TestGridServer_ReplaceTableUnknown(t *testing.T) {
	gs := testServer(t)

	_, err := gs.replaceTable("missing", `{"columns": ["id"], "rows": []}`)
	assert.ErrorIs(t, err, engine.ErrInvalidRequest)
}

func TestGridServer_InsertRow(t *testing.T) {
	gs := testServer(t)

	require.NoError(t, gs.insertRow("users", `["3", "Cy"]`))

	grid, err := gs.eng.LoadTable("users")
	require.NoError(t, err)
	require.Equal(t, 3, grid.NumRows())
	assert.Equal(t, []string{"3", "Cy"}, grid.Rows[2])
}

func TestGridServer_InsertRowBadValues(t *testing.T) {
	gs := testServer(t)

	assert.Error(t, gs.insertRow("users", `{"a": 1}`))
	assert.Error(t, gs.insertRow("users", "not json"))
}
