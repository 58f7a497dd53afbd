package repotree

import (
	"sort"
	"sync"
)

// Aggregator rolls KPI values up the directory tree, strictly
// post-order: a directory's aggregate is computed only from its direct
// files and its subdirectories' already-computed aggregates, so every
// leaf contributes to each ancestor exactly once.
//
// The aggregator holds no KPI-specific logic. Reduction strategies are
// injected per KPI name; unregistered names fall back to the default
// reducer (mean, rounded to one decimal).
type Aggregator struct {
	reducers map[string]Reducer
	fallback Reducer
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithReducer registers a reducer for one KPI name.
func WithReducer(name string, r Reducer) Option {
	return func(a *Aggregator) { a.reducers[name] = r }
}

// WithDefaultReducer replaces the fallback reducer.
func WithDefaultReducer(r Reducer) Option {
	return func(a *Aggregator) { a.fallback = r }
}

// NewAggregator creates an aggregator with the given strategies.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		reducers: make(map[string]Reducer),
		fallback: Mean,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DefaultAggregator wires the standard KPI strategies: summed
// complexity totals stay means across directories, churn averages,
// ownership uses the composite union reducer.
func DefaultAggregator() *Aggregator {
	return NewAggregator(
		WithReducer(KPICyclomatic, Mean),
		WithReducer(KPICognitive, Mean),
		WithReducer(KPIChurn, Mean),
		WithReducer(KPIOwnership, SharedOwnership),
	)
}

// AggregateTree aggregates the whole tree from its root.
func (a *Aggregator) AggregateTree(t *Tree) {
	a.Aggregate(t.Root)
}

// Aggregate populates dir.KPIs and those of every directory below it.
// Sibling subtrees are aggregated concurrently; each directory node is
// written by exactly one goroutine, and the parent reads its children
// only after the join. Children are never mutated by their parent.
func (a *Aggregator) Aggregate(dir *Dir) {
	var wg sync.WaitGroup
	for _, sub := range dir.Subdirs {
		wg.Add(1)
		go func(s *Dir) {
			defer wg.Done()
			a.Aggregate(s)
		}(sub)
	}
	wg.Wait()

	for _, name := range a.kpiNames(dir) {
		values := a.collect(dir, name)
		if len(values) == 0 {
			// No contributing values: the KPI stays absent. Absence
			// must never be coerced to zero.
			continue
		}
		if reduced := a.reducerFor(name)(values); reduced != nil {
			dir.KPIs[name] = reduced
		}
	}
}

// kpiNames returns every KPI name present in the directory's direct
// files or subdirectory aggregates, sorted for determinism.
func (a *Aggregator) kpiNames(dir *Dir) []string {
	seen := make(map[string]bool)
	for _, f := range dir.Files {
		for name := range f.KPIs {
			seen[name] = true
		}
	}
	for _, sub := range dir.Subdirs {
		for name := range sub.KPIs {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// collect gathers the non-absent values of one KPI from direct files
// and direct subdirectory aggregates.
func (a *Aggregator) collect(dir *Dir, name string) []interface{} {
	var values []interface{}
	for _, f := range dir.Files {
		if v, ok := f.KPIs[name]; ok && v != nil {
			values = append(values, v)
		}
	}
	for _, sub := range dir.Subdirs {
		if v, ok := sub.KPIs[name]; ok && v != nil {
			values = append(values, v)
		}
	}
	return values
}

func (a *Aggregator) reducerFor(name string) Reducer {
	if r, ok := a.reducers[name]; ok {
		return r
	}
	return a.fallback
}
