package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/salescope/salescope/internal/db"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/refresh"
	"github.com/salescope/salescope/internal/warehouse"
)

var (
	refreshReports     []string
	refreshConcurrency int
	refreshTablePrefix string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute reports and materialize their result tables",
	Long: `Load a snapshot of the warehouse, recompute the selected reports in
memory and write each result set into its report table. Each table is
replaced atomically: readers see either the previous results or the new
ones, never a partial table.

Example:
  salescope refresh --connection "postgres://..."
  salescope refresh --reports productrank,agespending --concurrency 2`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringSliceVar(&refreshReports, "reports", nil,
		"reports to recompute (default: all registered reports)")
	refreshCmd.Flags().IntVar(&refreshConcurrency, "concurrency", 0,
		"number of reports computed in parallel")
	refreshCmd.Flags().StringVar(&refreshTablePrefix, "table-prefix", "",
		"prefix prepended to every report table name")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if len(refreshReports) > 0 {
		cfg.Refresh.Reports = refreshReports
	}
	if refreshConcurrency > 0 {
		cfg.Refresh.Concurrency = refreshConcurrency
	}
	if refreshTablePrefix != "" {
		cfg.Refresh.TablePrefix = refreshTablePrefix
	}

	// Validate configuration
	if err := cfg.ValidateRefresh(); err != nil {
		return err
	}

	selected, err := refresh.Select(cfg.Refresh.Reports)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no reports registered")
	}

	// Cancel on Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logging.Info().Msg("Loading warehouse snapshot")
	snap, err := warehouse.LoadSnapshot(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	runner := refresh.NewRunner(pool, cfg.Refresh.Concurrency).
		WithTablePrefix(cfg.Refresh.TablePrefix)
	results, err := runner.Run(ctx, snap, selected)
	if err != nil {
		return err
	}

	for _, res := range results {
		cmd.Printf("  %-15s %6d rows -> %s (%s)\n",
			res.Report, res.Rows, res.Table, res.Duration.Round(time.Millisecond))
	}

	if err := db.SaveRefreshMetadata(ctx, pool, len(results)); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}
