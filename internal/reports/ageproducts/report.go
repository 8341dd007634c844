// Package ageproducts implements the age-group product ranking report:
// product sales within (age group, category, subcategory) with window totals
// and ranks at subcategory and category level, and a top-5 product cut.
// Rows without an age group or category are excluded by this report's
// policy; a missing subcategory keeps the row under a placeholder bucket.
package ageproducts

import (
	"github.com/salescope/salescope/internal/engine"
	"github.com/salescope/salescope/internal/reports"
)

// TopN is the per-(age group, category, subcategory) product cut.
const TopN = 5

const unknownSubcategory = "(unknown)"

type report struct{}

// New creates the age-group product ranking report.
func New() reports.Report {
	return report{}
}

func (report) Name() string { return "ageproducts" }

func (report) Description() string {
	return "Product affinity by age cohort with subcategory- and category-level ranks"
}

func (report) Table() string { return "age_products" }

func (report) Compute(snap *engine.Snapshot) *engine.ResultSet {
	rows := engine.NewResolver(snap.Products, snap.Customers).ResolveAll(snap.Facts)

	key := func(r engine.ResolvedRow) (engine.Key, bool) {
		ageGroup, ok := r.AgeGroup()
		if !ok {
			return nil, false
		}
		category, ok := r.Category()
		if !ok {
			return nil, false
		}
		subcategory := unknownSubcategory
		if s, ok := r.Subcategory(); ok {
			subcategory = s
		}
		// Category implies a product match, so the name is always present.
		name, _ := r.ProductName()
		return engine.Key{ageGroup, category, subcategory, name}, true
	}

	tab := engine.Group(rows, key, []engine.Metric{
		engine.SumOf("sales", func(r engine.ResolvedRow) float64 { return r.Fact.SalesAmount }),
		engine.SumOf("quantity", func(r engine.ResolvedRow) float64 { return float64(r.Fact.Quantity) }),
	})

	tab.WindowSum("sales", engine.Keep(0, 1, 2), "subcategory_sales")
	tab.WindowSum("sales", engine.Keep(0, 1), "category_sales")

	// Three independent ranking passes: products inside their subcategory,
	// subcategory totals inside their category, category totals inside the
	// age group.
	tab.DenseRank("sales", engine.Keep(0, 1, 2), "product_rank")
	tab.DenseRank("subcategory_sales", engine.Keep(0, 1), "subcategory_rank")
	tab.DenseRank("category_sales", engine.Keep(0), "category_rank")

	top := tab.TopK("product_rank", TopN)

	rs := engine.NewResultSet(
		engine.Text("age_group"),
		engine.Text("category"),
		engine.Text("subcategory"),
		engine.Text("product_name"),
		engine.Numeric("sales"),
		engine.Integer("quantity"),
		engine.Numeric("subcategory_sales"),
		engine.Numeric("category_sales"),
		engine.Integer("product_rank"),
		engine.Integer("subcategory_rank"),
		engine.Integer("category_rank"),
	)
	for _, rec := range top {
		rs.Append(
			rec.Key[0],
			rec.Key[1],
			rec.Key[2],
			rec.Key[3],
			rec.Value("sales"),
			int(rec.Value("quantity")),
			rec.Value("subcategory_sales"),
			rec.Value("category_sales"),
			rec.Rank("product_rank"),
			rec.Rank("subcategory_rank"),
			rec.Rank("category_rank"),
		)
	}
	return rs
}

func init() {
	reports.Register(New())
}
