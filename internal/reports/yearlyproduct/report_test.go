package yearlyproduct

import (
	"math"
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
			{Key: 1, Name: "Road Bike"},
			{Key: 2, Name: "Helmet"},
		},
		Facts: []engine.FactRow{
			{OrderNumber: "SO1", ProductKey: 1, OrderDate: date(2023, time.March, 1), Quantity: 1, SalesAmount: 100, Price: 100},
			{OrderNumber: "SO1", ProductKey: 2, OrderDate: date(2023, time.March, 1), Quantity: 2, SalesAmount: 60, Price: 30},
			{OrderNumber: "SO2", ProductKey: 1, OrderDate: date(2024, time.July, 4), Quantity: 1, SalesAmount: 120, Price: 120},
			{OrderNumber: "SO3", ProductKey: 1, OrderDate: date(2024, time.August, 9), Quantity: 1, SalesAmount: 80, Price: 80},
			{OrderNumber: "SO4", ProductKey: 2, OrderDate: date(2024, time.September, 2), Quantity: 1, SalesAmount: 30, Price: 30},
		},
	}
}

func row(t *testing.T, rs *engine.ResultSet, year, product string) []any {
	t.Helper()
	for _, r := range rs.Rows {
		if r[0] == year && r[1] == product {
			return r
		}
	}
	t.Fatalf("Missing row (%s, %s)", year, product)
	return nil
}

func TestComputeMetrics(t *testing.T) {
	rs := New().Compute(fixture())

	r := row(t, rs, "2024", "Road Bike")
	if got := r[2].(float64); got != 200 {
		t.Errorf("Expected 2024 Road Bike sales 200, got %v", got)
	}
	if got := r[4].(int); got != 2 {
		t.Errorf("Expected 2 distinct orders, got %d", got)
	}
	if got := r[5].(float64); got != 100 {
		t.Errorf("Expected avg price 100, got %v", got)
	}
}

func TestComputeYearWindowTotal(t *testing.T) {
	rs := New().Compute(fixture())

	// Window conservation: each year total equals the sum of its rows.
	yearSums := make(map[string]float64)
	for _, r := range rs.Rows {
		yearSums[r[0].(string)] += r[2].(float64)
	}
	for _, r := range rs.Rows {
		want := yearSums[r[0].(string)]
		if got := r[6].(float64); math.Abs(got-want) > 1e-9 {
			t.Errorf("Row %v/%v: year_sales %v, want %v", r[0], r[1], got, want)
		}
	}
}

func TestComputeRunningTotals(t *testing.T) {
	rs := New().Compute(fixture())

	if got := row(t, rs, "2023", "Road Bike")[7].(float64); got != 100 {
		t.Errorf("Expected running total 100 in 2023, got %v", got)
	}
	if got := row(t, rs, "2024", "Road Bike")[7].(float64); got != 300 {
		t.Errorf("Expected running total 300 in 2024, got %v", got)
	}
	if got := row(t, rs, "2024", "Helmet")[7].(float64); got != 90 {
		t.Errorf("Expected Helmet running total 90 in 2024, got %v", got)
	}
}

func TestComputePerYearRank(t *testing.T) {
	rs := New().Compute(fixture())

	if got := row(t, rs, "2024", "Road Bike")[8].(int); got != 1 {
		t.Errorf("Expected Road Bike rank 1 in 2024, got %d", got)
	}
	if got := row(t, rs, "2024", "Helmet")[8].(int); got != 2 {
		t.Errorf("Expected Helmet rank 2 in 2024, got %d", got)
	}
}
