// Package agespending implements the age-group spending summary: total
// spending, distinct customers and orders, and average sale value per age
// cohort, with each cohort's share of overall spending and a spending rank.
// Rows without an age group (missing customer match or empty label) are
// excluded by this report's policy.
package agespending

import (
	"strconv"

	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/reports"
)

type report struct{}

// New creates the age-group spending summary report.
func New() reports.Report {
	return report{}
}

func (report) Name() string { return "agespending" }

func (report) Description() string {
	return "Spending summary by customer age cohort with spending share and rank"
}

func (report) Table() string { return "age_spending" }

func (report) Compute(snap *engine.Snapshot) *engine.ResultSet {
	rows := engine.NewResolver(snap.Products, snap.Customers).ResolveAll(snap.Facts)

	key := func(r engine.ResolvedRow) (engine.Key, bool) {
		ageGroup, ok := r.AgeGroup()
		if !ok {
			return nil, false
		}
		return engine.Key{ageGroup}, true
	}

	tab := engine.Group(rows, key, []engine.Metric{
		engine.SumOf("spending", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
		engine.DistinctCount("customers", func(r engine.ResolvedRow) string {
			return strconv.Itoa(r.Fact.CustomerKey)
		}),
		engine.DistinctCount("orders", func(r engine.ResolvedRow) string { return r.Fact.OrderNumber }),
		engine.AvgOf("avg_sale", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
	})

	tab.WindowSum("spending", engine.Global, "total_spending")
	tab.DenseRank("spending", engine.Global, "spending_rank")

	rs := engine.NewResultSet(
		engine.Text("age_group"),
		engine.Numeric("spending"),
		engine.Integer("customers"),
		engine.Integer("orders"),
		engine.Numeric("avg_sale"),
		engine.Numeric("spending_share"),
		engine.Integer("spending_rank"),
	)
	for _, rec := range tab.Records() {
		rs.Append(
			rec.Key[0],
			rec.Value("spending"),
			int(rec.Value("customers")),
			int(rec.Value("orders")),
			rec.Value("avg_sale"),
			rec.Value("spending")/rec.Value("total_spending"),
			rec.Rank("spending_rank"),
		)
	}
	return rs
}

func init() {
	reports.Register(New())
}
