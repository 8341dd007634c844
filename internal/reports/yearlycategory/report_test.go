package yearlycategory

import (
	"testing"
	"time"

	"github.com/salescope/salescope/internal/engine"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func fixture() *engine.Snapshot {
	return &engine.Snapshot{
		Products: []engine.Product{
			{Key: 1, Name: "Road Bike", Category: "Bikes"},
			{Key: 2, Name: "Helmet", Category: "Accessories"},
			{Key: 3, Name: "Sticker", Category: "n/a"},
			{Key: 4, Name: "Mystery", Category: ""},
		},
		Facts: []engine.FactRow{
			{OrderNumber: "SO1", ProductKey: 1, OrderDate: date(2023, time.May, 1), Quantity: 1, SalesAmount: 400},
			{OrderNumber: "SO2", ProductKey: 2, OrderDate: date(2023, time.May, 2), Quantity: 1, SalesAmount: 100},
			{OrderNumber: "SO3", ProductKey: 1, OrderDate: date(2024, time.May, 1), Quantity: 1, SalesAmount: 300},
			{OrderNumber: "SO4", ProductKey: 2, OrderDate: date(2024, time.May, 2), Quantity: 1, SalesAmount: 500},
			// Excluded: sentinel category, empty category, no product match.
			{OrderNumber: "SO5", ProductKey: 3, OrderDate: date(2024, time.May, 3), Quantity: 1, SalesAmount: 50},
			{OrderNumber: "SO6", ProductKey: 4, OrderDate: date(2024, time.May, 4), Quantity: 1, SalesAmount: 60},
			{OrderNumber: "SO7", ProductKey: 999, OrderDate: date(2024, time.May, 5), Quantity: 1, SalesAmount: 70},
		},
	}
}

func row(t *testing.T, rs *engine.ResultSet, year, category string) []any {
	t.Helper()
	for _, r := range rs.Rows {
		if r[0] == year && r[1] == category {
			return r
		}
	}
	t.Fatalf("Missing row (%s, %s)", year, category)
	return nil
}

func TestComputeFiltersAbsentCategories(t *testing.T) {
	rs := New().Compute(fixture())

	if len(rs.Rows) != 4 {
		t.Fatalf("Expected 4 rows (2 years x 2 categories), got %d", len(rs.Rows))
	}
	for _, r := range rs.Rows {
		cat := r[1].(string)
		if cat != "Bikes" && cat != "Accessories" {
			t.Errorf("Unexpected category %q in results", cat)
		}
	}
}

func TestComputeRunningTotalsPerCategory(t *testing.T) {
	rs := New().Compute(fixture())

	if got := row(t, rs, "2023", "Bikes")[6].(float64); got != 400 {
		t.Errorf("Expected Bikes running total 400 in 2023, got %v", got)
	}
	if got := row(t, rs, "2024", "Bikes")[6].(float64); got != 700 {
		t.Errorf("Expected Bikes running total 700 in 2024, got %v", got)
	}
	if got := row(t, rs, "2024", "Accessories")[6].(float64); got != 600 {
		t.Errorf("Expected Accessories running total 600 in 2024, got %v", got)
	}
}

func TestComputeRankFlipsBetweenYears(t *testing.T) {
	rs := New().Compute(fixture())

	if got := row(t, rs, "2023", "Bikes")[7].(int); got != 1 {
		t.Errorf("Expected Bikes rank 1 in 2023, got %d", got)
	}
	if got := row(t, rs, "2024", "Bikes")[7].(int); got != 2 {
		t.Errorf("Expected Bikes rank 2 in 2024, got %d", got)
	}
	if got := row(t, rs, "2024", "Accessories")[7].(int); got != 1 {
		t.Errorf("Expected Accessories rank 1 in 2024, got %d", got)
	}
}
