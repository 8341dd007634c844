// Package engine implements the aggregation-and-ranking core: dimension
// resolution, multi-key grouping, partitioned window sums, dense ranking and
// top-K filtering over immutable warehouse snapshots.
package engine

import "time"

// FactRow is a single sales transaction from the fact table.
type FactRow struct {
	// OrderNumber identifies the order. It is not unique per row: an order
	// with several line items produces several fact rows, so distinct-count
	// metrics use it rather than row counts.
	OrderNumber string

	// ProductKey and CustomerKey reference the dimension tables. A key with
	// no dimension match is valid (outer-join semantics).
	ProductKey  int
	CustomerKey int

	// OrderDate is nil when the source row had no date. Rows with a nil date
	// are excluded from temporal groupings before aggregation.
	OrderDate *time.Time

	Quantity    int
	SalesAmount float64
	Price       float64
}

// Product is a row from the product dimension.
type Product struct {
	Key  int
	Name string

	// Category is empty when absent. The literal "n/a" is a source sentinel
	// and is also treated as absent by category-scoped reports.
	Category    string
	Subcategory string
	Cost        float64
}

// Customer is a row from the customer dimension.
type Customer struct {
	Key       int
	FirstName string
	LastName  string
	Country   string
	Gender    string

	// AgeGroup is derived upstream and consumed as given; empty means absent.
	AgeGroup string
}

// Snapshot is an immutable view of the warehouse taken at computation start.
// The engine never mutates it; all reports read from the same snapshot.
type Snapshot struct {
	Facts     []FactRow
	Products  []Product
	Customers []Customer
}
