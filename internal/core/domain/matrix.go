package domain

import "strings"

// Axis is one dimension of the build matrix, governed by a package name:
// a recipe builds against every configured value of the axis only when its
// build dependencies reference the governing package. Otherwise the axis
// collapses to its first configured value.
type Axis struct {
	// Name identifies the axis (e.g. "python", "numpy").
	Name string

	// Package is the governing package name looked up in build dependencies.
	Package string

	// TagPrefix is prepended to a compacted value to form the tag used by
	// skip specifiers and filenames (e.g. "py" + "27" -> "py27").
	TagPrefix string

	// Values are the configured versions, in build order. Values[0] is the
	// default used when the axis is collapsed.
	Values []string
}

// Tag returns the axis tag for a concrete value, with dots removed
// ("3.4" -> "py34" for prefix "py").
func (a Axis) Tag(value string) string {
	return a.TagPrefix + strings.ReplaceAll(value, ".", "")
}

// AxisValue is one axis pinned to one concrete value.
type AxisValue struct {
	Axis  Axis
	Value string
}

// Tag returns the tag form of the pinned value.
func (av AxisValue) Tag() string {
	return av.Axis.Tag(av.Value)
}

// MatrixPoint is one concrete combination of axis values selected for a
// single build attempt of a single recipe.
type MatrixPoint struct {
	Values []AxisValue
}

// Get returns the value pinned for the named axis, or "" when the point
// does not carry that axis.
func (p MatrixPoint) Get(axisName string) string {
	for _, av := range p.Values {
		if av.Axis.Name == axisName {
			return av.Value
		}
	}
	return ""
}

// Key returns a stable identity string for the point, suitable as a cache
// key component.
func (p MatrixPoint) Key() string {
	parts := make([]string, len(p.Values))
	for i, av := range p.Values {
		parts[i] = av.Axis.Name + "=" + av.Value
	}
	return strings.Join(parts, ",")
}

// Tags returns the tag form of every pinned value, in axis order.
func (p MatrixPoint) Tags() []string {
	tags := make([]string, len(p.Values))
	for i, av := range p.Values {
		tags[i] = av.Tag()
	}
	return tags
}

// String renders the point for logs ("python=2.7,numpy=1.9").
func (p MatrixPoint) String() string {
	return p.Key()
}

// ExpandMatrix computes the matrix points to attempt for a recipe.
//
// Each axis contributes its full value list when the recipe's build
// dependencies include the axis's governing package, and only its default
// value otherwise. The cross product is generated axis-major, in list
// order, so the first axis varies slowest.
func ExpandMatrix(recipe *Recipe, axes []Axis) []MatrixPoint {
	points := []MatrixPoint{{}}

	for _, axis := range axes {
		if len(axis.Values) == 0 {
			continue
		}
		values := axis.Values
		if !recipe.BuildDeps.Contains(axis.Package) {
			values = axis.Values[:1]
		}

		next := make([]MatrixPoint, 0, len(points)*len(values))
		for _, p := range points {
			for _, v := range values {
				combined := make([]AxisValue, len(p.Values), len(p.Values)+1)
				copy(combined, p.Values)
				combined = append(combined, AxisValue{Axis: axis, Value: v})
				next = append(next, MatrixPoint{Values: combined})
			}
		}
		points = next
	}

	return points
}

// DefaultAxes returns the standard two-axis matrix: the Python runtime
// axis and the NumPy numeric-library axis.
func DefaultAxes(pythons, numpys []string) []Axis {
	return []Axis{
		{Name: "python", Package: "python", TagPrefix: "py", Values: pythons},
		{Name: "numpy", Package: "numpy", TagPrefix: "np", Values: numpys},
	}
}
