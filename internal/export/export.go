// Package export writes materialized tables to files in several formats.
//
// An Exporter writes through a billy filesystem, so the CLI points it at
// a directory on disk while tests run it against an in-memory
// filesystem. File names carry the table name and a timestamp,
// <table>_<stamp>.<ext>, so repeated exports never clobber each other.
package export

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/agentic-research/sqlgrid/internal/engine"
)

// Exporter writes grids to files on a single filesystem.
type Exporter struct {
	fs billy.Filesystem
}

// New returns an exporter writing to fs.
func New(fs billy.Filesystem) *Exporter {
	return &Exporter{fs: fs}
}

// NewDir returns an exporter writing to dir on the local disk. The
// directory is created on first write.
func NewDir(dir string) *Exporter {
	return &Exporter{fs: osfs.New(dir)}
}

const stampLayout = "2006-01-02_15-04-05"

func fileName(table, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", table, now.Format(stampLayout), ext)
}

func (ex *Exporter) writeFile(name string, data []byte) error {
	f, err := ex.fs.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close() // ignore error
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// headerAt returns the grid header for column i, or a positional
// placeholder when the grid has none.
func headerAt(g *engine.Grid, i int) string {
	if i < len(g.Headers) && g.Headers[i] != "" {
		return g.Headers[i]
	}
	return fmt.Sprintf("Column_%d", i+1)
}

// headerRow materializes one name per column, placeholders included.
func headerRow(g *engine.Grid) []string {
	out := make([]string, g.Width())
	for i := range out {
		out[i] = headerAt(g, i)
	}
	return out
}

// paddedRows copies the grid's rows with every row brought to the grid
// width, short rows padded with empty cells.
func paddedRows(g *engine.Grid) [][]string {
	width := g.Width()
	out := make([][]string, g.NumRows())
	for r := range out {
		row := make([]string, width)
		for c := 0; c < width; c++ {
			row[c] = g.Cell(r, c)
		}
		out[r] = row
	}
	return out
}
