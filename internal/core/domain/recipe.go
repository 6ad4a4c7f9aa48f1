// Package domain contains the core domain models for batch recipe builds.
package domain

import "slices"

// Recipe is the fixed descriptor for one package build definition.
// All fields are computed once at metadata load time and immutable afterwards.
type Recipe struct {
	// Name is the declared package name, unique within a build run.
	Name string

	// Path is the recipe directory on disk.
	Path string

	// BuildDeps, RunDeps and TestDeps hold declared dependency package names
	// with version constraints stripped.
	BuildDeps StringSet
	RunDeps   StringSet
	TestDeps  StringSet
}

// DependsOn reports whether pkg appears in any of the recipe's dependency sets.
func (r *Recipe) DependsOn(pkg string) bool {
	return r.BuildDeps.Contains(pkg) || r.RunDeps.Contains(pkg) || r.TestDeps.Contains(pkg)
}

// GraphDeps returns the union of all dependency sets, with the recipe's own
// name removed. This is the edge set used for build ordering.
func (r *Recipe) GraphDeps() StringSet {
	deps := make(StringSet, len(r.BuildDeps)+len(r.RunDeps)+len(r.TestDeps))
	for _, set := range []StringSet{r.BuildDeps, r.RunDeps, r.TestDeps} {
		for name := range set {
			deps[name] = struct{}{}
		}
	}
	delete(deps, r.Name)
	return deps
}

// StringSet is a set of package names.
type StringSet map[string]struct{}

// NewStringSet builds a set from the given names.
func NewStringSet(names ...string) StringSet {
	s := make(StringSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set.
func (s StringSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the set's members in lexicographic order.
func (s StringSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
