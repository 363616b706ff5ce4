package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/sqlgrid/internal/engine"
	"github.com/agentic-research/sqlgrid/internal/export"
)

func TestReadCSVGrid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	content := "\xEF\xBB\xBFid,name\n1,Ann\n2,\"Ben, Jr.\"\n3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	grid, err := readCSVGrid(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, grid.Headers)
	require.Equal(t, 3, grid.NumRows())
	assert.Equal(t, []string{"1", "Ann"}, grid.Rows[0])
	assert.Equal(t, []string{"2", "Ben, Jr."}, grid.Rows[1])
	// Short records survive parsing; the commit pads them.
	assert.Equal(t, []string{"3"}, grid.Rows[2])
}

func TestReadCSVGrid_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	grid, err := readCSVGrid(path)
	require.NoError(t, err)
	assert.Equal(t, 0, grid.Width())
	assert.Equal(t, 0, grid.NumRows())
}

func TestReadCSVGrid_MissingFile(t *testing.T) {
	_, err := readCSVGrid(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadCSVGrid_RoundTripsExport(t *testing.T) {
	grid := &engine.Grid{
		Headers: []string{"id", "name"},
		Rows:    [][]string{{"1", "Ann"}, {"2", `comma, "quote"`}},
	}

	dir := t.TempDir()
	name, err := export.NewDir(dir).CSV("users", grid)
	require.NoError(t, err)

	got, err := readCSVGrid(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, grid.Headers, got.Headers)
	assert.Equal(t, grid.Rows, got.Rows)
}
