// Package refresh recomputes registered reports from a warehouse snapshot
// and materializes the results back into result tables.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/logging"
	"github.com/salescope/salescope/internal/reports"
	"github.com/salescope/salescope/internal/warehouse"
)

// Result describes the outcome of one report run.
type Result struct {
	Report   string
	Table    string
	Rows     int
	Duration time.Duration
	Err      error
}

// Runner computes a set of reports in parallel and writes each result set
// to its report table. Reports are independent, so failures are isolated:
// one failed report does not stop the others.
type Runner struct {
	pool        *pgxpool.Pool
	concurrency int
	tablePrefix string

	// Metrics
	reportsRun  atomic.Int64
	rowsWritten atomic.Int64
	failures    atomic.Int64
}

// NewRunner creates a runner writing through the given pool.
func NewRunner(pool *pgxpool.Pool, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{pool: pool, concurrency: concurrency}
}

// WithTablePrefix prepends a prefix to every report table name, allowing
// several result sets to coexist in one database.
func (r *Runner) WithTablePrefix(prefix string) *Runner {
	r.tablePrefix = prefix
	return r
}

// Run computes and materializes each selected report against the snapshot.
// It returns one Result per report, in the order the reports were given.
// The returned error is non-nil only if the context was cancelled or at
// least one report failed.
func (r *Runner) Run(ctx context.Context, snap *engine.Snapshot, selected []reports.Report) ([]Result, error) {
	start := time.Now()

	logging.Info().
		Int("reports", len(selected)).
		Int("concurrency", r.concurrency).
		Msg("Starting report refresh")

	results := make([]Result, len(selected))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.runOne(ctx, snap, selected[i])
			}
		}()
	}

	for i := range selected {
		select {
		case <-ctx.Done():
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	logging.Info().
		Int64("reports_run", r.reportsRun.Load()).
		Int64("rows_written", r.rowsWritten.Load()).
		Int64("failures", r.failures.Load()).
		Dur("elapsed", time.Since(start)).
		Msg("Report refresh complete")

	if n := r.failures.Load(); n > 0 {
		return results, fmt.Errorf("%d of %d reports failed", n, len(selected))
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, snap *engine.Snapshot, rep reports.Report) Result {
	log := logging.With(rep.Name())
	start := time.Now()
	table := r.tablePrefix + rep.Table()

	rs := rep.Compute(snap)
	if err := warehouse.Materialize(ctx, r.pool, table, rs); err != nil {
		r.failures.Add(1)
		log.Error().Err(err).Msg("Report failed")
		return Result{Report: rep.Name(), Table: table, Duration: time.Since(start), Err: err}
	}

	r.reportsRun.Add(1)
	r.rowsWritten.Add(int64(len(rs.Rows)))

	log.Info().
		Int("rows", len(rs.Rows)).
		Str("table", table).
		Dur("elapsed", time.Since(start)).
		Msg("Report materialized")

	return Result{
		Report:   rep.Name(),
		Table:    table,
		Rows:     len(rs.Rows),
		Duration: time.Since(start),
	}
}

// RowsWritten reports the total rows materialized across all runs.
func (r *Runner) RowsWritten() int64 { return r.rowsWritten.Load() }

// ReportsRun reports the number of reports materialized successfully.
func (r *Runner) ReportsRun() int64 { return r.reportsRun.Load() }

// Select resolves report names to registered reports. An empty selection
// means every registered report, in name order.
func Select(names []string) ([]reports.Report, error) {
	if len(names) == 0 {
		return reports.All(), nil
	}
	selected := make([]reports.Report, 0, len(names))
	for _, name := range names {
		rep, err := reports.Get(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, rep)
	}
	return selected, nil
}

// ComputeAll computes each report against the snapshot without touching
// the warehouse. It returns result sets keyed by report name.
func ComputeAll(snap *engine.Snapshot, selected []reports.Report) map[string]*engine.ResultSet {
	out := make(map[string]*engine.ResultSet, len(selected))
	for _, rep := range selected {
		out[rep.Name()] = rep.Compute(snap)
	}
	return out
}
