package engine

import "sort"

// DenseRank assigns dense ranks within each partition induced by project,
// ordered by metric descending: tied values share a rank and the next
// distinct value's rank is exactly one greater, with no gaps. Ties are
// broken deterministically by lexicographic ascending group key, so
// re-running on identical input yields identical ordering. Ranks are stored
// on each record under out.
//
// Rank-of-rank reports call DenseRank twice with different projection and
// metric pairs; each call sorts its own view of the records and shares no
// state with any other call.
func (t *Table) DenseRank(metric string, project Projection, out string) {
	partitions := make(map[string][]*Record)
	for _, rec := range t.records {
		id := project(rec.Key).id()
		partitions[id] = append(partitions[id], rec)
	}

	for _, part := range partitions {
		sort.Slice(part, func(i, j int) bool {
			vi, vj := part[i].Value(metric), part[j].Value(metric)
			if vi != vj {
				return vi > vj
			}
			return part[i].Key.Compare(part[j].Key) < 0
		})
		rank := 1
		for i, rec := range part {
			if i > 0 && rec.Value(metric) != part[i-1].Value(metric) {
				rank++
			}
			rec.Ranks[out] = rank
		}
	}
}
