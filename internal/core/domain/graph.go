package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DependencyGraph maps a package name to the set of in-repo packages it
// depends on. External and system dependencies are excluded before
// construction; they are irrelevant to build ordering.
type DependencyGraph map[string]StringSet

// BuildGraph constructs the dependency graph for the given recipe set.
// Each recipe's dependency edges are restricted to names that identify
// another recipe in the set; self-edges are dropped.
func BuildGraph(recipes []*Recipe) DependencyGraph {
	known := make(StringSet, len(recipes))
	for _, r := range recipes {
		known[r.Name] = struct{}{}
	}

	g := make(DependencyGraph, len(recipes))
	for _, r := range recipes {
		deps := make(StringSet)
		for dep := range r.GraphDeps() {
			if known.Contains(dep) {
				deps[dep] = struct{}{}
			}
		}
		g[r.Name] = deps
	}
	return g
}

// ResolveOrder produces a linear build order satisfying every edge in the
// graph: for each package, all of its in-graph dependencies appear earlier.
//
// The algorithm repeatedly extracts the subset of packages whose dependency
// set is empty, emits them sorted by name so the result is a deterministic
// function of the input, and removes them from all remaining dependency
// sets. Names that appear only as dependency values are treated as
// already-satisfied leaves. If no package is ready while packages remain,
// the graph is cyclic and ErrCyclicDependency is returned with the
// remaining packages and their unresolved dependencies attached.
func (g DependencyGraph) ResolveOrder() ([]string, error) {
	remaining := make(map[string]StringSet, len(g))
	for name, deps := range g {
		r := make(StringSet, len(deps))
		for dep := range deps {
			// A dependency with no node of its own cannot block anything.
			if _, known := g[dep]; known && dep != name {
				r[dep] = struct{}{}
			}
		}
		remaining[name] = r
	}

	order := make([]string, 0, len(remaining))
	for len(remaining) > 0 {
		ready := make([]string, 0, len(remaining))
		for name, deps := range remaining {
			if len(deps) == 0 {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			return nil, zerr.With(ErrCyclicDependency, "unresolved", formatRemaining(remaining))
		}

		slices.Sort(ready)
		order = append(order, ready...)

		for _, name := range ready {
			delete(remaining, name)
		}
		for _, deps := range remaining {
			for _, name := range ready {
				delete(deps, name)
			}
		}
	}

	return order, nil
}

// formatRemaining renders the stuck portion of the graph for diagnostics.
func formatRemaining(remaining map[string]StringSet) string {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s -> [%s]", name, strings.Join(remaining[name].Sorted(), ", ")))
	}
	return strings.Join(parts, "; ")
}
