package engine

import (
	"math"
	"testing"
	"time"
)

func windowFixture() *Table {
	products := []Product{
		{Key: 1, Name: "A"},
		{Key: 2, Name: "B"},
		{Key: 3, Name: "C"},
	}
	facts := []FactRow{
		{OrderNumber: "SO1", ProductKey: 1, OrderDate: date(2024, time.January, 5), Quantity: 10, SalesAmount: 100},
		{OrderNumber: "SO2", ProductKey: 2, OrderDate: date(2024, time.January, 6), Quantity: 10, SalesAmount: 80},
		{OrderNumber: "SO3", ProductKey: 1, OrderDate: date(2024, time.February, 1), Quantity: 5, SalesAmount: 60},
		{OrderNumber: "SO4", ProductKey: 3, OrderDate: date(2024, time.April, 2), Quantity: 7, SalesAmount: 70},
		{OrderNumber: "SO5", ProductKey: 2, OrderDate: date(2024, time.May, 9), Quantity: 3, SalesAmount: 30},
	}
	rows := NewResolver(products, nil).ResolveAll(facts)
	key := func(r ResolvedRow) (Key, bool) {
		q, ok := r.Quarter()
		if !ok {
			return nil, false
		}
		m, _ := r.Month()
		name, _ := r.ProductName()
		return Key{q, m, name}, true
	}
	return Group(rows, key, []Metric{SumOf("sales", salesAmount)})
}

func TestWindowSumConservation(t *testing.T) {
	tab := windowFixture()
	tab.WindowSum("sales", Keep(0), "quarter_sales")

	// For every coarse partition, the annotated total must equal the sum of
	// the base metric over the records in that partition.
	byQuarter := make(map[string]float64)
	for _, rec := range tab.Records() {
		byQuarter[rec.Key[0]] += rec.Value("sales")
	}
	for _, rec := range tab.Records() {
		want := byQuarter[rec.Key[0]]
		if got := rec.Value("quarter_sales"); math.Abs(got-want) > 1e-9 {
			t.Errorf("Record %v: quarter_sales = %v, want %v", rec.Key, got, want)
		}
	}

	q1, _ := tab.Lookup(Key{"2024-Q1", "2024-01", "A"})
	if got := q1.Value("quarter_sales"); got != 240 {
		t.Errorf("Expected Q1 total 240, got %v", got)
	}
	q2, _ := tab.Lookup(Key{"2024-Q2", "2024-04", "C"})
	if got := q2.Value("quarter_sales"); got != 100 {
		t.Errorf("Expected Q2 total 100, got %v", got)
	}
}

func TestWindowSumIndependentProjections(t *testing.T) {
	tab := windowFixture()
	tab.WindowSum("sales", Keep(0, 2), "quarter_product_sales")
	tab.WindowSum("sales", Keep(1, 2), "month_product_sales")
	tab.WindowSum("sales", Keep(0), "quarter_sales")

	rec, _ := tab.Lookup(Key{"2024-Q1", "2024-01", "A"})
	if got := rec.Value("quarter_product_sales"); got != 160 {
		t.Errorf("Expected quarter x product total 160, got %v", got)
	}
	if got := rec.Value("month_product_sales"); got != 100 {
		t.Errorf("Expected month x product total 100, got %v", got)
	}
	if got := rec.Value("quarter_sales"); got != 240 {
		t.Errorf("Expected quarter total 240, got %v", got)
	}
}

func TestRunningSumInKeyOrder(t *testing.T) {
	products := []Product{{Key: 1, Name: "A"}, {Key: 2, Name: "B"}}
	facts := []FactRow{
		{ProductKey: 1, OrderDate: date(2022, time.March, 1), SalesAmount: 10},
		{ProductKey: 1, OrderDate: date(2023, time.March, 1), SalesAmount: 20},
		{ProductKey: 1, OrderDate: date(2024, time.March, 1), SalesAmount: 30},
		{ProductKey: 2, OrderDate: date(2023, time.June, 1), SalesAmount: 5},
		{ProductKey: 2, OrderDate: date(2024, time.June, 1), SalesAmount: 7},
	}
	rows := NewResolver(products, nil).ResolveAll(facts)
	key := func(r ResolvedRow) (Key, bool) {
		y, ok := r.Year()
		if !ok {
			return nil, false
		}
		name, _ := r.ProductName()
		return Key{y, name}, true
	}
	tab := Group(rows, key, []Metric{SumOf("sales", salesAmount)})
	tab.RunningSum("sales", Keep(1), "running_sales")

	want := map[string]float64{
		"2022\x1fA": 10,
		"2023\x1fA": 30,
		"2024\x1fA": 60,
		"2023\x1fB": 5,
		"2024\x1fB": 7,
	}
	for _, rec := range tab.Records() {
		if got := rec.Value("running_sales"); got != want[rec.Key.id()] {
			t.Errorf("Record %v: running_sales = %v, want %v", rec.Key, got, want[rec.Key.id()])
		}
	}
}

func TestValueMissingNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for unknown value name")
		}
	}()
	rec := &Record{Key: Key{"x"}, Values: map[string]float64{}}
	rec.Value("nope")
}
