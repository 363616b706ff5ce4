// Package cmd wires the sqlgrid commands around the engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/sqlgrid/internal/config"
	"github.com/agentic-research/sqlgrid/internal/engine"
	"github.com/agentic-research/sqlgrid/internal/logging"
)

const version = "0.1.0"

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an HCL config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json")
}

var rootCmd = &cobra.Command{
	Use:     "sqlgrid",
	Short:   "Edit SQLite tables as text grids with atomic full-table commits",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.Default()
		}
		// Flags win over the config file.
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}
		logging.Setup(cfg.Log.Level, cfg.Log.Format)
		return nil
	},
}

// openEngine opens the database at path with the configured tuning
// applied. The caller owns the returned engine and closes it when done.
func openEngine(path string) (*engine.Engine, error) {
	eng := engine.New()
	eng.BusyTimeout = cfg.Database.Timeout()
	eng.JournalMode = cfg.Database.JournalMode
	eng.ReadOnly = cfg.Database.ReadOnly
	if err := eng.Open(path); err != nil {
		return nil, err
	}
	return eng, nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
