package export

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/agentic-research/sqlgrid/internal/engine"
)

// The document is self-contained and print-oriented: inline styles, no
// scripts, no external assets.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { color: #333; text-align: center; margin-bottom: 20px; }
table { border-collapse: collapse; width: 100%; margin: 0 auto; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; font-weight: bold; }
tr:nth-child(even) { background-color: #f9f9f9; }
.info { font-size: 12px; color: #666; text-align: center; margin-top: 20px; }
</style>
</head>
<body>
<h1>Table: {{.Table}}</h1>
<table>
<tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</table>
<div class="info">Exported on {{.Stamp}} | Total rows: {{.Count}}</div>
</body>
</html>
`

var documentTmpl = template.Must(template.New("document").Parse(documentTemplate))

type documentData struct {
	Table   string
	Headers []string
	Rows    [][]string
	Stamp   string
	Count   int
}

// HTML writes the grid as a standalone styled document and returns the
// file name. Cell text is escaped by the template engine.
func (ex *Exporter) HTML(table string, grid *engine.Grid) (string, error) {
	now := time.Now()
	name := fileName(table, "html", now)

	var buf bytes.Buffer
	err := documentTmpl.Execute(&buf, documentData{
		Table:   table,
		Headers: headerRow(grid),
		Rows:    paddedRows(grid),
		Stamp:   now.Format("2006-01-02 15:04:05"),
		Count:   grid.NumRows(),
	})
	if err != nil {
		return "", fmt.Errorf("render document for %s: %w", table, err)
	}

	if err := ex.writeFile(name, buf.Bytes()); err != nil {
		return "", err
	}
	slog.Info("table exported", "format", "html", "file", name, "rows", grid.NumRows())
	return name, nil
}
