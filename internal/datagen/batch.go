package datagen

import (
	"github.com/salescope/salescope/internal/logging"
)

// BatchInsertConfig configures batch insert behavior during seeding.
type BatchInsertConfig struct {
	// BatchSize is the number of rows per batch insert.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        1000,
		ProgressInterval: 50000,
	}
}

// ProgressReporter tracks and reports seeding progress per table.
type ProgressReporter struct {
	tableName        string
	totalRows        int
	currentRow       int
	progressInterval int
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows, interval int) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs when an interval is crossed.
func (p *ProgressReporter) Update(rowsInserted int) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int("rows", p.currentRow).
			Int("total", p.totalRows).
			Float64("percent", pct).
			Msg("Seeding data")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int("rows", p.currentRow).
		Msg("Table complete")
}
