// Package yearlyproduct implements the yearly product analysis report:
// per-year product sales, quantity, distinct orders and average price, the
// year-level sales total, a running sales total per product across years,
// and a per-year total-sales ranking.
package yearlyproduct

import (
	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/reports"
)

const unknownProduct = "(unknown)"

type report struct{}

// New creates the yearly product analysis report.
func New() reports.Report {
	return report{}
}

func (report) Name() string { return "yearlyproduct" }

func (report) Description() string {
	return "Yearly product sales with running totals and per-year sales ranking"
}

func (report) Table() string { return "yearly_product" }

func (report) Compute(snap *engine.Snapshot) *engine.ResultSet {
	rows := engine.NewResolver(snap.Products, snap.Customers).ResolveAll(snap.Facts)

	// Rows without an order date are excluded; rows without a product match
	// are kept under a placeholder bucket.
	key := func(r engine.ResolvedRow) (engine.Key, bool) {
		year, ok := r.Year()
		if !ok {
			return nil, false
		}
		name := unknownProduct
		if n, ok := r.ProductName(); ok {
			name = n
		}
		return engine.Key{year, name}, true
	}

	tab := engine.Group(rows, key, []engine.Metric{
		engine.SumOf("sales", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
		engine.SumOf("quantity", func(r engine.ResolvedRow) float64 { return float64(r.Fact.Quantity) }),
		engine.DistinctCount("orders", func(r engine.ResolvedRow) string { return r.Fact.OrderNumber }),
		engine.AvgOf("avg_price", func(r engine.ResolvedRow) float64 { return r.Fact.Price }),
	})

	tab.WindowSum("sales", engine.Keep(0), "year_sales")
	// Records are in (year, product) key order, so accumulating per product
	// walks the years in ascending order.
	tab.RunningSum("sales", engine.Keep(1), "running_sales")
	tab.DenseRank("sales", engine.Keep(0), "sales_rank")

	rs := engine.NewResultSet(
		engine.Text("year"),
		engine.Text("product_name"),
		engine.Numeric("sales"),
		engine.Integer("quantity"),
		engine.Integer("orders"),
		engine.Numeric("avg_price"),
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
			rec.Value("avg_price"),
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
