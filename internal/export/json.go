package export

import (
	"log/slog"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/agentic-research/sqlgrid/api"
	"github.com/agentic-research/sqlgrid/internal/engine"
)

// JSON writes the grid as an indented JSON document and returns the file
// name. The payload shape is the same one the server hands back for
// table reads.
func (ex *Exporter) JSON(table string, grid *engine.Grid) (string, error) {
	name := fileName(table, "json", time.Now())

	doc := oj.JSON(api.TableData{
		Table:   table,
		Columns: headerRow(grid),
		Rows:    paddedRows(grid),
	}, 2)

	if err := ex.writeFile(name, []byte(doc)); err != nil {
		return "", err
	}
	slog.Info("table exported", "format", "json", "file", name, "rows", grid.NumRows())
	return name, nil
}
