package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentic-research/sqlgrid/internal/export"
)

var (
	exportFormat string
	exportDir    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, html, json, or all")
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [database] [table]",
	Short: "Export a table to timestamped files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = eng.Close() }()

		table := args[1]
		grid, err := eng.LoadTable(table)
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		ex := export.NewDir(dir)

		formats := []string{exportFormat}
		if exportFormat == "all" {
			formats = []string{"csv", "html", "json"}
		}
		for _, f := range formats {
			var name string
			switch f {
			case "csv":
				name, err = ex.CSV(table, grid)
			case "html":
				name, err = ex.HTML(table, grid)
			case "json":
				name, err = ex.JSON(table, grid)
			default:
				return fmt.Errorf("unknown format %q (want csv, html, json, or all)", f)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Exported %s\n", filepath.Join(dir, name))
		}
		return nil
	},
}
