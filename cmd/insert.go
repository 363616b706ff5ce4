package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert [database] [table] [value...]",
	Short: "Append one row to a table",
	Long: `Append one row to a table. Values bind to the table's columns in
order; omitted values are stored as empty strings.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = eng.Close() }()

		if err := eng.InsertRow(args[1], args[2:]); err != nil {
			return err
		}
		fmt.Printf("Inserted 1 row into %s.\n", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
