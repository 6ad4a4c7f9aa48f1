// Package planner turns a recipe set into an ordered build plan: it
// resolves the dependency order, expands the build matrix per recipe and
// applies the skip/exists filter to every matrix point.
package planner

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a single planning run.
type Options struct {
	// Axes of the build matrix, in cross-product order. The first axis is
	// the runtime axis; its tags govern skip specifier matching.
	Axes []domain.Axis

	// Platform is the platform tag decisions are made for.
	Platform string

	// ChannelUser enables the remote-exists check against that user's
	// channel when non-empty.
	ChannelUser string

	// UploadUser marks surviving points for upload when non-empty.
	UploadUser string
}

// runtimeTags returns the skip tags of the runtime axis.
func (o Options) runtimeTags() []string {
	if len(o.Axes) == 0 {
		return nil
	}
	axis := o.Axes[0]
	tags := make([]string, len(axis.Values))
	for i, v := range axis.Values {
		tags[i] = axis.Tag(v)
	}
	return tags
}

// Planner computes the build plan for one run.
type Planner struct {
	meta    ports.MetadataReader
	builder ports.Builder
	repo    ports.Repository
	logger  ports.Logger
}

// New creates a Planner.
func New(meta ports.MetadataReader, builder ports.Builder, repo ports.Repository, logger ports.Logger) *Planner {
	return &Planner{meta: meta, builder: builder, repo: repo, logger: logger}
}

// Plan resolves the build order for the recipe set and produces one
// decision per (recipe, matrix point) pair. Skip rules are validated
// before any decision is made, so a bad specifier aborts the whole run
// up front.
func (p *Planner) Plan(ctx context.Context, recipes []*domain.Recipe, opts Options) ([]domain.PlannedBuild, error) {
	order, err := domain.BuildGraph(recipes).ResolveOrder()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*domain.Recipe, len(recipes))
	for _, r := range recipes {
		byName[r.Name] = r
	}

	tags := opts.runtimeTags()
	rules := make(map[string][]domain.SkipRule, len(recipes))
	for _, name := range order {
		rs, err := p.meta.SkipRules(byName[name], tags)
		if err != nil {
			return nil, err
		}
		rules[name] = rs
	}

	cache := newQueryCache()
	var plan []domain.PlannedBuild
	for _, name := range order {
		recipe := byName[name]
		for _, point := range domain.ExpandMatrix(recipe, opts.Axes) {
			planned, err := p.decide(ctx, recipe, point, rules[name], opts, cache)
			if err != nil {
				return nil, err
			}
			plan = append(plan, planned)
		}
	}
	return plan, nil
}

// decide applies the three skip checks in order; the first match wins.
func (p *Planner) decide(ctx context.Context, recipe *domain.Recipe, point domain.MatrixPoint, rules []domain.SkipRule, opts Options, cache *queryCache) (domain.PlannedBuild, error) {
	planned := domain.PlannedBuild{Recipe: recipe, Point: point}

	// 1. Explicit skip rule.
	runtimeTag := ""
	if len(point.Values) > 0 {
		runtimeTag = point.Values[0].Tag()
	}
	for _, rule := range rules {
		if rule.Matches(opts.Platform, runtimeTag) {
			planned.Decision = domain.DecisionSkipRule
			return planned, nil
		}
	}

	// 2. Local artifact exists.
	outputPath, err := cache.outputPath(ctx, p.builder, recipe, point)
	if err != nil {
		return planned, err
	}
	planned.OutputPath = outputPath
	if _, err := os.Stat(outputPath); err == nil {
		planned.Decision = domain.DecisionSkipLocal
		return planned, nil
	}

	// 3. Remote artifact exists.
	if opts.ChannelUser != "" {
		spec, err := domain.ParseDistSpec(outputPath, opts.Platform)
		if err != nil {
			return planned, err
		}
		dist, err := cache.findRemote(ctx, p.repo, opts.ChannelUser, recipe, point, spec)
		switch {
		case err == nil:
			planned.Decision = domain.DecisionSkipRemote
			planned.Remote = dist
			return planned, nil
		case errors.Is(err, domain.ErrDistributionNotFound):
			// Not published; fall through to build.
		default:
			return planned, zerr.With(zerr.Wrap(err, "remote existence check failed"), "recipe", recipe.Name)
		}
	}

	planned.Decision = domain.DecisionBuild
	if opts.UploadUser != "" {
		planned.Decision = domain.DecisionBuildUpload
	}
	return planned, nil
}
