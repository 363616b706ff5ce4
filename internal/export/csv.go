package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/agentic-research/sqlgrid/internal/engine"
)

// utf8BOM goes in front of CSV output so Excel detects the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes the grid as an Excel-compatible CSV file and returns the
// file name. The file opens with a UTF-8 byte order mark and the header
// row; fields are quoted per RFC 4180 only when they need it.
func (ex *Exporter) CSV(table string, grid *engine.Grid) (string, error) {
	name := fileName(table, "csv", time.Now())

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.Write(headerRow(grid)); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for r, row := range paddedRows(grid) {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row %d: %w", r, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	if err := ex.writeFile(name, buf.Bytes()); err != nil {
		return "", err
	}
	slog.Info("table exported", "format", "csv", "file", name, "rows", grid.NumRows())
	return name, nil
}
