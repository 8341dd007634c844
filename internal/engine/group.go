package engine

import (
	"sort"
	"strings"
)

// keySep joins key components into a map key. It never occurs in source data.
const keySep = "\x1f"

// Key is an ordered tuple of group-key components. Equal tuples collapse to
// one aggregate record regardless of arrival order.
type Key []string

func (k Key) id() string {
	return strings.Join(k, keySep)
}

// Compare orders keys lexicographically component by component, shorter
// prefix first. This is the engine's deterministic tie-break order.
func (k Key) Compare(o Key) int {
	for i := 0; i < len(k) && i < len(o); i++ {
		if c := strings.Compare(k[i], o[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(o):
		return -1
	case len(k) > len(o):
		return 1
	}
	return 0
}

// KeyFunc extracts a group key from a resolved row. Returning ok=false
// excludes the row from the grouping entirely; this is how rows with a null
// required component (e.g. a missing order date) are filtered before
// aggregation rather than after.
type KeyFunc func(ResolvedRow) (Key, bool)

// AggKind selects the aggregation function of a Metric.
type AggKind int

const (
	// AggSum sums the metric value over the group.
	AggSum AggKind = iota
	// AggCount counts rows in the group.
	AggCount
	// AggAvg averages the metric value over the group.
	AggAvg
	// AggCountDistinct counts distinct labels within the group.
	AggCountDistinct
)

// Metric specifies one aggregate computed per group. All metrics of a
// grouping are computed in a single pass over the input rows.
type Metric struct {
	Name string
	Kind AggKind

	// Value supplies the numeric input for AggSum and AggAvg.
	Value func(ResolvedRow) float64

	// Label supplies the distinct-count input for AggCountDistinct.
	Label func(ResolvedRow) string
}

// SumOf returns a sum metric.
func SumOf(name string, value func(ResolvedRow) float64) Metric {
	return Metric{Name: name, Kind: AggSum, Value: value}
}

// AvgOf returns an average metric.
func AvgOf(name string, value func(ResolvedRow) float64) Metric {
	return Metric{Name: name, Kind: AggAvg, Value: value}
}

// CountRows returns a row-count metric.
func CountRows(name string) Metric {
	return Metric{Name: name, Kind: AggCount}
}

// DistinctCount returns a distinct-label count metric.
func DistinctCount(name string, label func(ResolvedRow) string) Metric {
	return Metric{Name: name, Kind: AggCountDistinct, Label: label}
}

// Record is one aggregate row: a group key, its metric values (including any
// window columns attached later) and any rank assignments.
type Record struct {
	Key    Key
	Values map[string]float64
	Ranks  map[string]int
}

// Value returns a metric or window column by name; missing names are an
// internal programming error.
func (r *Record) Value(name string) float64 {
	v, ok := r.Values[name]
	if !ok {
		panic("engine: record has no value " + name)
	}
	return v
}

// Rank returns a rank assignment by name; missing names are an internal
// programming error.
func (r *Record) Rank(name string) int {
	v, ok := r.Ranks[name]
	if !ok {
		panic("engine: record has no rank " + name)
	}
	return v
}

// Table is the result of a grouping pass: one record per distinct key,
// ordered by key. Window and rank passes annotate the records in place.
type Table struct {
	records []*Record
	index   map[string]*Record
}

type accumulator struct {
	key    Key
	sums   []float64
	counts []int
	sets   []map[string]struct{}
}

// Group reduces rows into one aggregate record per distinct key produced by
// keyFn. Rows keyFn rejects are excluded. Every metric is computed over
// exactly the rows matching its key in a single pass over the input.
func Group(rows []ResolvedRow, keyFn KeyFunc, metrics []Metric) *Table {
	accs := make(map[string]*accumulator)
	for _, row := range rows {
		key, ok := keyFn(row)
		if !ok {
			continue
		}
		id := key.id()
		acc := accs[id]
		if acc == nil {
			acc = &accumulator{
				key:    key,
				sums:   make([]float64, len(metrics)),
				counts: make([]int, len(metrics)),
				sets:   make([]map[string]struct{}, len(metrics)),
			}
			accs[id] = acc
		}
		for i, m := range metrics {
			switch m.Kind {
			case AggSum, AggAvg:
				acc.sums[i] += m.Value(row)
				acc.counts[i]++
			case AggCount:
				acc.counts[i]++
			case AggCountDistinct:
				if acc.sets[i] == nil {
					acc.sets[i] = make(map[string]struct{})
				}
				acc.sets[i][m.Label(row)] = struct{}{}
			}
		}
	}

	t := &Table{
		records: make([]*Record, 0, len(accs)),
		index:   make(map[string]*Record, len(accs)),
	}
	for id, acc := range accs {
		rec := &Record{
			Key:    acc.key,
			Values: make(map[string]float64, len(metrics)),
			Ranks:  make(map[string]int),
		}
		for i, m := range metrics {
			switch m.Kind {
			case AggSum:
				rec.Values[m.Name] = acc.sums[i]
			case AggCount:
				rec.Values[m.Name] = float64(acc.counts[i])
			case AggAvg:
				// A group exists only because at least one row produced it,
				// so the count is never zero here.
				rec.Values[m.Name] = acc.sums[i] / float64(acc.counts[i])
			case AggCountDistinct:
				rec.Values[m.Name] = float64(len(acc.sets[i]))
			}
		}
		t.records = append(t.records, rec)
		t.index[id] = rec
	}
	sort.Slice(t.records, func(i, j int) bool {
		return t.records[i].Key.Compare(t.records[j].Key) < 0
	})
	return t
}

// Records returns the table's records in key order.
func (t *Table) Records() []*Record {
	return t.records
}

// Len returns the number of aggregate records.
func (t *Table) Len() int {
	return len(t.records)
}

// Lookup returns the record for an exact key, if present.
func (t *Table) Lookup(k Key) (*Record, bool) {
	rec, ok := t.index[k.id()]
	return rec, ok
}
