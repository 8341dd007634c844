package engine

import (
	"math"
	"testing"
	"time"
)

func salesAmount(r ResolvedRow) float64 { return r.Fact.SalesAmount }
func quantity(r ResolvedRow) float64    { return float64(r.Fact.Quantity) }
func orderNumber(r ResolvedRow) string  { return r.Fact.OrderNumber }

// byQuarterAndProduct groups on (quarter, product name); rows without an
// order date are excluded, rows without a product match keep a placeholder.
func byQuarterAndProduct(r ResolvedRow) (Key, bool) {
	q, ok := r.Quarter()
	if !ok {
		return nil, false
	}
	name := "(unknown)"
	if n, ok := r.ProductName(); ok {
		name = n
	}
	return Key{q, name}, true
}

func groupFixture() []ResolvedRow {
	products := []Product{
		{Key: 1, Name: "A"},
		{Key: 2, Name: "B"},
	}
	facts := []FactRow{
		{OrderNumber: "SO1", ProductKey: 1, OrderDate: date(2024, time.January, 10), Quantity: 10, SalesAmount: 100, Price: 10},
		{OrderNumber: "SO1", ProductKey: 1, OrderDate: date(2024, time.January, 10), Quantity: 2, SalesAmount: 40, Price: 20},
		{OrderNumber: "SO2", ProductKey: 2, OrderDate: date(2024, time.January, 15), Quantity: 10, SalesAmount: 90, Price: 9},
		{OrderNumber: "SO3", ProductKey: 1, OrderDate: date(2024, time.February, 1), Quantity: 5, SalesAmount: 50, Price: 10},
		// Null order date: excluded from temporal groupings.
		{OrderNumber: "SO4", ProductKey: 1, OrderDate: nil, Quantity: 99, SalesAmount: 999, Price: 1},
	}
	return NewResolver(products, nil).ResolveAll(facts)
}

func TestGroupSingleKeyPerTuple(t *testing.T) {
	tab := Group(groupFixture(), byQuarterAndProduct, []Metric{SumOf("sales", salesAmount)})

	if tab.Len() != 2 {
		t.Fatalf("Expected 2 groups, got %d", tab.Len())
	}
	recA, ok := tab.Lookup(Key{"2024-Q1", "A"})
	if !ok {
		t.Fatal("Missing group (2024-Q1, A)")
	}
	if got := recA.Value("sales"); got != 190 {
		t.Errorf("Expected sales 190 for A, got %v", got)
	}
	recB, ok := tab.Lookup(Key{"2024-Q1", "B"})
	if !ok {
		t.Fatal("Missing group (2024-Q1, B)")
	}
	if got := recB.Value("sales"); got != 90 {
		t.Errorf("Expected sales 90 for B, got %v", got)
	}
}

func TestGroupNullRequiredComponentExcluded(t *testing.T) {
	tab := Group(groupFixture(), byQuarterAndProduct, []Metric{SumOf("qty", quantity)})

	for _, rec := range tab.Records() {
		if rec.Value("qty") >= 99 {
			t.Errorf("Row with null order date leaked into group %v", rec.Key)
		}
	}

	// The same rows do appear in a grouping that does not require a date.
	byProduct := func(r ResolvedRow) (Key, bool) {
		name, _ := r.ProductName()
		return Key{name}, true
	}
	tab = Group(groupFixture(), byProduct, []Metric{SumOf("qty", quantity)})
	rec, ok := tab.Lookup(Key{"A"})
	if !ok {
		t.Fatal("Missing product group A")
	}
	if got := rec.Value("qty"); got != 116 {
		t.Errorf("Expected qty 116 including the undated row, got %v", got)
	}
}

func TestGroupMultipleMetricsOnePass(t *testing.T) {
	tab := Group(groupFixture(), byQuarterAndProduct, []Metric{
		SumOf("sales", salesAmount),
		SumOf("quantity", quantity),
		CountRows("rows"),
		AvgOf("avg_price", func(r ResolvedRow) float64 { return r.Fact.Price }),
		DistinctCount("orders", orderNumber),
	})

	rec, ok := tab.Lookup(Key{"2024-Q1", "A"})
	if !ok {
		t.Fatal("Missing group (2024-Q1, A)")
	}
	if got := rec.Value("quantity"); got != 17 {
		t.Errorf("Expected quantity 17, got %v", got)
	}
	if got := rec.Value("rows"); got != 3 {
		t.Errorf("Expected 3 rows, got %v", got)
	}
	if got := rec.Value("avg_price"); math.Abs(got-40.0/3.0) > 1e-9 {
		t.Errorf("Expected avg price 13.33, got %v", got)
	}
	// SO1 appears on two rows but counts once.
	if got := rec.Value("orders"); got != 2 {
		t.Errorf("Expected 2 distinct orders, got %v", got)
	}
}

func TestGroupRecordsSortedByKey(t *testing.T) {
	tab := Group(groupFixture(), byQuarterAndProduct, []Metric{CountRows("rows")})

	recs := tab.Records()
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Key.Compare(recs[i].Key) >= 0 {
			t.Fatalf("Records out of key order: %v before %v", recs[i-1].Key, recs[i].Key)
		}
	}
}

func TestKeyCompare(t *testing.T) {
	tests := []struct {
		a, b Key
		want int
	}{
		{Key{"a"}, Key{"b"}, -1},
		{Key{"b"}, Key{"a"}, 1},
		{Key{"a", "x"}, Key{"a", "x"}, 0},
		{Key{"a"}, Key{"a", "x"}, -1},
		{Key{"a", "y"}, Key{"a", "x"}, 1},
	}
	for _, tc := range tests {
		if got := tc.a.Compare(tc.b); got != tc.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
