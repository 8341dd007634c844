// Package reports defines the report interface and registry. Each report is
// a self-contained pipeline from a warehouse snapshot to a materialized
// result set; reports share no mutable state and can run concurrently over
// the same snapshot.
package reports

import (
	"fmt"
	"sort"
	"sync"

	"github.com/salescope/salescope/internal/engine"
)

// Report is one named analytics computation. Compute is pure: it performs no
// I/O, never mutates the snapshot, and produces rows in deterministic order
// so that re-running over an unchanged snapshot yields identical output.
type Report interface {
	// Name is the report identifier used in configuration and CLI flags.
	Name() string

	// Description describes what the report computes.
	Description() string

	// Table is the result table name the report materializes into.
	Table() string

	// Compute runs the report's pipeline over the snapshot.
	Compute(snap *engine.Snapshot) *engine.ResultSet
}

var (
	registry = make(map[string]Report)
	mu       sync.RWMutex
)

// Register adds a report to the registry.
func Register(r Report) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name()] = r
}

// Get retrieves a report by name.
func Get(name string) (Report, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown report: %s", name)
	}
	return r, nil
}

// List returns all registered report names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered reports in name order.
func All() []Report {
	out := make([]Report, 0, len(registry))
	for _, name := range List() {
		mu.RLock()
		out = append(out, registry[name])
		mu.RUnlock()
	}
	return out
}
