package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var showLimit int

func init() {
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Print at most this many rows (0 = all)")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show [database] [table]",
	Short: "Print a table's contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = eng.Close() }()

		grid, err := eng.LoadTable(args[1])
		if err != nil {
			return err
		}

		rows := grid.Rows
		if showLimit > 0 && len(rows) > showLimit {
			rows = rows[:showLimit]
		}
		printGrid(grid.Headers, rows)
		fmt.Printf("(%d rows)\n", grid.NumRows())
		return nil
	},
}

// printGrid renders rows in fixed-width columns sized to the widest
// cell, capped so one long value cannot blow up the layout.
func printGrid(headers []string, rows [][]string) {
	const maxColWidth = 40

	width := len(headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return
	}

	widths := make([]int, width)
	for i := range widths {
		if i < len(headers) {
			widths[i] = len(headers[i])
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := len(truncate(cell, maxColWidth)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		h := ""
		if i < len(headers) {
			h = headers[i]
		}
		fmt.Fprintf(&b, "%-*s  ", widths[i], truncate(h, maxColWidth))
	}
	fmt.Println(strings.TrimRight(b.String(), " "))

	b.Reset()
	for i := 0; i < width; i++ {
		fmt.Fprintf(&b, "%s  ", strings.Repeat("-", widths[i]))
	}
	fmt.Println(strings.TrimRight(b.String(), " "))

	for _, row := range rows {
		b.Reset()
		for i := 0; i < width; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(&b, "%-*s  ", widths[i], truncate(cell, maxColWidth))
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}

// truncate shortens a string to max length with ellipsis, flattening
// newlines and tabs so a cell stays on one line.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
