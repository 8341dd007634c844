// Package cli implements the command-line interface for salescope.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/config"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/reports"
	"github.com/salescope/salescope/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salescope",
		Short: "Sales analytics engine for PostgreSQL warehouses",
		Long: `salescope computes aggregation-and-ranking reports over a PostgreSQL
sales warehouse: product rankings per quarter, yearly running totals,
spending by customer age group and more.

The 'init' command creates the warehouse schema and fills it with
synthetic sales data. The 'refresh' command loads a snapshot of the
warehouse, recomputes all reports in memory and materializes the results
into report tables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salescope.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(reportsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List all registered reports. Each report reads the warehouse snapshot
and materializes one result table; the 'refresh' command recomputes them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		cmd.Println()
		for _, name := range reports.List() {
			rep, err := reports.Get(name)
			if err != nil {
				continue
			}
			cmd.Printf("  %-15s - %s (table: %s)\n", rep.Name(), rep.Description(), rep.Table())
		}
	},
}
