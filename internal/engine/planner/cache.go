package planner

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// queryCache memoizes the expensive external queries made while planning:
// builder output-path computation and remote distribution lookups. Entries
// are keyed by the exact (recipe, matrix point) tuple and the cache lives
// for a single run only.
type queryCache struct {
	outputPaths map[string]outputPathEntry
	remote      map[string]remoteEntry
}

type outputPathEntry struct {
	path string
	err  error
}

type remoteEntry struct {
	dist *domain.Distribution
	err  error
}

func newQueryCache() *queryCache {
	return &queryCache{
		outputPaths: make(map[string]outputPathEntry),
		remote:      make(map[string]remoteEntry),
	}
}

func pointKey(recipe *domain.Recipe, point domain.MatrixPoint) string {
	return recipe.Name + "|" + point.Key()
}

// outputPath returns the builder's expected artifact path for the pair,
// querying the builder at most once per key.
func (c *queryCache) outputPath(ctx context.Context, builder ports.Builder, recipe *domain.Recipe, point domain.MatrixPoint) (string, error) {
	key := pointKey(recipe, point)
	if entry, ok := c.outputPaths[key]; ok {
		return entry.path, entry.err
	}
	path, err := builder.OutputPath(ctx, recipe, point)
	c.outputPaths[key] = outputPathEntry{path: path, err: err}
	return path, err
}

// findRemote returns the remote lookup result for the pair, querying the
// repository at most once per (user, recipe, point).
func (c *queryCache) findRemote(ctx context.Context, repo ports.Repository, user string, recipe *domain.Recipe, point domain.MatrixPoint, spec domain.DistSpec) (*domain.Distribution, error) {
	key := user + "|" + pointKey(recipe, point)
	if entry, ok := c.remote[key]; ok {
		return entry.dist, entry.err
	}
	dist, err := repo.Find(ctx, user, spec)
	c.remote[key] = remoteEntry{dist: dist, err: err}
	return dist, err
}
