package engine

import (
	"testing"
	"time"
)

func TestTopKBoundaryTiesRetained(t *testing.T) {
	products := []Product{
		{Key: 1, Name: "A"}, {Key: 2, Name: "B"}, {Key: 3, Name: "C"}, {Key: 4, Name: "D"},
	}
	facts := []FactRow{
		{ProductKey: 1, OrderDate: date(2024, time.January, 1), Quantity: 20},
		{ProductKey: 2, OrderDate: date(2024, time.January, 2), Quantity: 10},
		{ProductKey: 3, OrderDate: date(2024, time.January, 3), Quantity: 10},
		{ProductKey: 4, OrderDate: date(2024, time.January, 4), Quantity: 1},
	}
	tab := rankFixture(facts, products)
	tab.DenseRank("qty", Keep(0), "rank")

	// B and C tie at rank 2; a top-2 filter keeps both, so three records pass.
	top := tab.TopK("rank", 2)
	if len(top) != 3 {
		t.Fatalf("Expected 3 records (tie at boundary rank), got %d", len(top))
	}
	for _, rec := range top {
		if rec.Rank("rank") > 2 {
			t.Errorf("Record %v with rank %d passed a top-2 filter", rec.Key, rec.Rank("rank"))
		}
		if rec.Key[1] == "D" {
			t.Error("Record D (rank 3) should have been filtered")
		}
	}
}

func TestTopKPreservesOrder(t *testing.T) {
	products := []Product{{Key: 1, Name: "A"}, {Key: 2, Name: "B"}}
	facts := []FactRow{
		{ProductKey: 2, OrderDate: date(2024, time.January, 1), Quantity: 5},
		{ProductKey: 1, OrderDate: date(2024, time.January, 2), Quantity: 9},
	}
	tab := rankFixture(facts, products)
	tab.DenseRank("qty", Keep(0), "rank")

	top := tab.TopK("rank", 2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(top))
	}
	// Table order is key order, not rank order.
	if top[0].Key[1] != "A" || top[1].Key[1] != "B" {
		t.Errorf("TopK reordered records: %v, %v", top[0].Key, top[1].Key)
	}
}

func TestTopKMissingRankFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic for unknown rank field")
		}
	}()
	recs := []*Record{{Key: Key{"x"}, Ranks: map[string]int{}}}
	TopK(recs, "nope", 1)
}
