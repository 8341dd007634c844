// Package yearlycategory implements the yearly category analysis report:
// per-year category sales with year totals, running category totals across
// years, and a per-year sales ranking. Rows without a usable category
// (missing product, empty category, or the "n/a" sentinel) are excluded by
// this report's policy.
package yearlycategory

import (
	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/reports"
)

type report struct{}

// New creates the yearly category analysis report.
func New() reports.Report {
	return report{}
}

func (report) Name() string { return "yearlycategory" }

func (report) Description() string {
	return "Yearly category sales with running totals and per-year sales ranking"
}

func (report) Table() string { return "yearly_category" }

func (report) Compute(snap *engine.Snapshot) *engine.ResultSet {
	rows := engine.NewResolver(snap.Products, snap.Customers).ResolveAll(snap.Facts)

	key := func(r engine.ResolvedRow) (engine.Key, bool) {
		year, ok := r.Year()
		if !ok {
			return nil, false
		}
		category, ok := r.Category()
		if !ok {
			return nil, false
		}
		return engine.Key{year, category}, true
	}

	tab := engine.Group(rows, key, []engine.Metric{
		engine.SumOf("sales", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
		engine.SumOf("quantity", func(r engine.ResolvedRow) float64 { return float64(r.Fact.Quantity) }),
		engine.DistinctCount("orders", func(r engine.ResolvedRow) string { return r.Fact.OrderNumber }),
	})

	tab.WindowSum("sales", engine.Keep(0), "year_sales")
	tab.RunningSum("sales", engine.Keep(1), "running_sales")
	tab.DenseRank("sales", engine.Keep(0), "sales_rank")

	rs := engine.NewResultSet(
		engine.Text("year"),
		engine.Text("category"),
		engine.Numeric("sales"),
		engine.Integer("quantity"),
		engine.Integer("orders"),
		engine.Numeric("year_sales"),
		engine.Numeric("running_sales"),
		engine.Integer("sales_rank"),
	)
	for _, rec := range tab.Records() {
		rs.Append(
			rec.Key[0],
			rec.Key[1],
			rec.Value("sales"),
			int(rec.Value("quantity")),
			int(rec.Value("orders")),
			rec.Value("year_sales"),
			rec.Value("running_sales"),
			rec.Rank("sales_rank"),
		)
	}
	return rs
}

func init() {
	reports.Register(New())
}
