// Package productrank implements the quarter/month product ranking report:
// per-quarter and per-month product sales with quarter-level totals, a
// per-quarter product rank, a global rank of the quarters themselves, and a
// top-3 cut per quarter.
package productrank

import (
	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/reports"
)

// TopN is the per-quarter product cut. Ties at the boundary rank all pass.
const TopN = 3

// unknownProduct labels fact rows whose product key has no dimension match.
// This report deliberately keeps such rows (outer-join semantics); only rows
// without an order date are excluded.
const unknownProduct = "(unknown)"

type report struct{}

// New creates the quarter/month product ranking report.
func New() reports.Report {
	return report{}
}

func (report) Name() string { return "productrank" }

func (report) Description() string {
	return "Top products per quarter and month with quarter totals and quarter ranking"
}

func (report) Table() string { return "product_rank" }

func (report) Compute(snap *engine.Snapshot) *engine.ResultSet {
	rows := engine.NewResolver(snap.Products, snap.Customers).ResolveAll(snap.Facts)

	key := func(r engine.ResolvedRow) (engine.Key, bool) {
		quarter, ok := r.Quarter()
		if !ok {
			return nil, false
		}
		month, _ := r.Month()
		name := unknownProduct
		if n, ok := r.ProductName(); ok {
			name = n
		}
		return engine.Key{quarter, month, name}, true
	}

	tab := engine.Group(rows, key, []engine.Metric{
		engine.SumOf("sales", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
		engine.SumOf("quantity", func(r engine.ResolvedRow) float64 { return float64(r.Fact.Quantity) }),
		engine.DistinctCount("orders", func(r engine.ResolvedRow) string { return r.Fact.OrderNumber }),
	})

	tab.WindowSum("sales", engine.Keep(0, 2), "quarter_product_sales")
	tab.WindowSum("sales", engine.Keep(1, 2), "month_product_sales")
	tab.WindowSum("sales", engine.Keep(0), "quarter_sales")

	// Product rank inside the quarter, then an independent ranking of the
	// quarter totals themselves across all quarters.
	tab.DenseRank("quarter_product_sales", engine.Keep(0), "product_rank")
	tab.DenseRank("quarter_sales", engine.Global, "quarter_rank")

	top := tab.TopK("product_rank", TopN)

	rs := engine.NewResultSet(
		engine.Text("quarter"),
		engine.Text("month"),
		engine.Text("product_name"),
		engine.Numeric("sales"),
		engine.Integer("quantity"),
		engine.Integer("orders"),
		engine.Numeric("quarter_product_sales"),
		engine.Numeric("month_product_sales"),
		engine.Numeric("quarter_sales"),
		engine.Integer("product_rank"),
		engine.Integer("quarter_rank"),
	)
	for _, rec := range top {
		rs.Append(
			rec.Key[0],
			rec.Key[1],
			rec.Key[2],
			rec.Value("sales"),
			int(rec.Value("quantity")),
			int(rec.Value("orders")),
			rec.Value("quarter_product_sales"),
			rec.Value("month_product_sales"),
			rec.Value("quarter_sales"),
			rec.Rank("product_rank"),
			rec.Rank("quarter_rank"),
		)
	}
	return rs
}

func init() {
	reports.Register(New())
}
