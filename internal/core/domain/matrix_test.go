package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/core/domain"
)

func testAxes() []domain.Axis {
	return domain.DefaultAxes([]string{"2.7", "3.4"}, []string{"1.9", "1.10"})
}

func pointKeys(points []domain.MatrixPoint) []string {
	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = p.Key()
	}
	return keys
}

func TestExpandMatrix_CollapsesUnusedAxis(t *testing.T) {
	recipe := &domain.Recipe{
		Name:      "plainpkg",
		BuildDeps: domain.NewStringSet("python"),
	}

	points := domain.ExpandMatrix(recipe, testAxes())

	// The numpy axis collapses to its first configured value.
	require.Equal(t, []string{
		"python=2.7,numpy=1.9",
		"python=3.4,numpy=1.9",
	}, pointKeys(points))
}

func TestExpandMatrix_FullCrossProduct(t *testing.T) {
	recipe := &domain.Recipe{
		Name:      "scipy",
		BuildDeps: domain.NewStringSet("python", "numpy"),
	}

	points := domain.ExpandMatrix(recipe, testAxes())

	// Axis-major, list order: the first axis varies slowest.
	require.Equal(t, []string{
		"python=2.7,numpy=1.9",
		"python=2.7,numpy=1.10",
		"python=3.4,numpy=1.9",
		"python=3.4,numpy=1.10",
	}, pointKeys(points))
}

func TestExpandMatrix_RunDepsDoNotCount(t *testing.T) {
	// Only build dependencies govern axis membership.
	recipe := &domain.Recipe{
		Name:      "viz",
		BuildDeps: domain.NewStringSet("python"),
		RunDeps:   domain.NewStringSet("numpy"),
	}

	points := domain.ExpandMatrix(recipe, testAxes())
	for _, p := range points {
		assert.Equal(t, "1.9", p.Get("numpy"))
	}
}

func TestExpandMatrix_NoAxes(t *testing.T) {
	recipe := &domain.Recipe{Name: "tool"}
	points := domain.ExpandMatrix(recipe, nil)
	require.Len(t, points, 1, "a recipe always builds at least once")
	assert.Empty(t, points[0].Values)
}

func TestMatrixPoint_Tags(t *testing.T) {
	recipe := &domain.Recipe{
		Name:      "scipy",
		BuildDeps: domain.NewStringSet("python", "numpy"),
	}

	points := domain.ExpandMatrix(recipe, testAxes())
	assert.Equal(t, []string{"py27", "np19"}, points[0].Tags())
}

func TestAxis_Tag(t *testing.T) {
	axis := domain.Axis{Name: "python", TagPrefix: "py"}
	assert.Equal(t, "py34", axis.Tag("3.4"))
	assert.Equal(t, "py27", axis.Tag("27"))
}
