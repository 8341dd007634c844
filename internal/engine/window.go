package engine

// Projection maps a fine group key to a coarser partition key, typically by
// keeping a subset of its components. Projections drive both window
// aggregation and rank partitioning.
type Projection func(Key) Key

// Keep returns a projection that retains the key components at the given
// indexes, in the given order.
func Keep(idx ...int) Projection {
	return func(k Key) Key {
		out := make(Key, len(idx))
		for i, j := range idx {
			out[i] = k[j]
		}
		return out
	}
}

// Global projects every key onto a single partition.
func Global(Key) Key {
	return nil
}

// WindowSum attaches to every record the sum of metric over all records that
// share the same projected partition key, stored under out. Two passes: the
// first accumulates per-partition totals into an auxiliary table, the second
// annotates each record by lookup, so the cost is linear per window column.
// The second pass must observe the fully built totals, so the passes never
// interleave. Independent window columns may be attached to the same table
// by calling WindowSum once per projection.
func (t *Table) WindowSum(metric string, project Projection, out string) {
	totals := make(map[string]float64)
	for _, rec := range t.records {
		totals[project(rec.Key).id()] += rec.Value(metric)
	}
	for _, rec := range t.records {
		total, ok := totals[project(rec.Key).id()]
		if !ok {
			// Every partition was just built from these same records; a miss
			// is an internal invariant violation, not a data condition.
			panic("engine: window partition missing for key " + project(rec.Key).id())
		}
		rec.Values[out] = total
	}
}

// RunningSum attaches a cumulative sum of metric, accumulated in key order
// within each projected partition, stored under out. Record order is the
// table's deterministic key order, so re-running on the same input yields
// the same running totals.
func (t *Table) RunningSum(metric string, project Projection, out string) {
	running := make(map[string]float64)
	for _, rec := range t.records {
		id := project(rec.Key).id()
		running[id] += rec.Value(metric)
		rec.Values[out] = running[id]
	}
}
