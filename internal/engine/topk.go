package engine

// TopK retains the records whose rank under rankField is at most k,
// preserving input order. With dense ranking a tied group at the boundary
// rank passes in full, so the result may hold more than k records per
// partition; that is the intended contract, not an off-by-one.
func TopK(records []*Record, rankField string, k int) []*Record {
	out := make([]*Record, 0, len(records))
	for _, rec := range records {
		if rec.Rank(rankField) <= k {
			out = append(out, rec)
		}
	}
	return out
}

// TopK applies the top-K filter to the table's records in key order.
func (t *Table) TopK(rankField string, k int) []*Record {
	return TopK(t.records, rankField, k)
}
