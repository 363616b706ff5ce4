package cmd

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/sqlgrid/internal/engine"
)

var importCmd = &cobra.Command{
	Use:   "import [database] [table] [file.csv]",
	Short: "Replace a table's contents from a CSV file",
	Long: `Replace a table's contents from a CSV file. The first record is the
header row. The replacement runs in one transaction, so the table is
left untouched when any row fails.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		grid, err := readCSVGrid(args[2])
		if err != nil {
			return err
		}

		eng, err := openEngine(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = eng.Close() }()

		if err := eng.CommitGrid(args[1], grid); err != nil {
			return err
		}
		fmt.Printf("Replaced %s with %d rows.\n", args[1], grid.NumRows())
		return nil
	},
}

// readCSVGrid loads a CSV file as a grid, first record as the headers. A
// leading UTF-8 byte order mark is dropped so exported files round-trip.
func readCSVGrid(path string) (*engine.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return &engine.Grid{}, nil
	}
	return &engine.Grid{Headers: records[0], Rows: records[1:]}, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
