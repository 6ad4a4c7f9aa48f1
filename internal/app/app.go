// Package app implements the application layer for mason.
package app

import (
	"context"
	"os"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine/planner"
	"go.trai.ch/mason/internal/engine/runner"
	"go.trai.ch/zerr"
)

// RunConfig carries the options for one batch build invocation.
type RunConfig struct {
	// Patterns are recipe directory paths or globs.
	Patterns []string

	// Pythons and Numpys are the configured axis version lists.
	Pythons []string
	Numpys  []string

	// Platform is the platform tag; empty selects the running host's.
	Platform string

	// ChannelUser enables remote existence checks when non-empty.
	ChannelUser string

	// UploadUser enables uploads of successful builds when non-empty.
	UploadUser string

	// Builder is the builder executable name; empty selects the default.
	Builder string

	// NoTest disables recipe test phases.
	NoTest bool

	// KeepGoing collects build failures instead of stopping at the first.
	KeepGoing bool
}

// axes returns the configured build matrix.
func (c RunConfig) axes() []domain.Axis {
	return domain.DefaultAxes(c.Pythons, c.Numpys)
}

func (c RunConfig) platform() string {
	if c.Platform != "" {
		return c.Platform
	}
	return domain.CurrentPlatform()
}

// App represents the main application logic.
type App struct {
	meta       ports.MetadataReader
	repo       ports.Repository
	telemetry  ports.Telemetry
	logger     ports.Logger
	newBuilder ports.BuilderFactory
}

// New creates a new App instance.
func New(meta ports.MetadataReader, repo ports.Repository, telemetry ports.Telemetry, logger ports.Logger, newBuilder ports.BuilderFactory) *App {
	return &App{
		meta:       meta,
		repo:       repo,
		telemetry:  telemetry,
		logger:     logger,
		newBuilder: newBuilder,
	}
}

// Run executes the full batch: discover, order, plan, build, upload.
// All build work happens inside a scratch working directory that is
// removed on exit; the previous working directory is restored
// unconditionally.
func (a *App) Run(ctx context.Context, cfg RunConfig) error {
	builder := a.newBuilder(cfg.Builder)
	if err := builder.Check(); err != nil {
		return err
	}

	// Discovery and planning resolve paths relative to the caller's
	// working directory; only the builds themselves run in the scratch dir.
	plan, err := a.plan(ctx, cfg, builder)
	if err != nil {
		return err
	}

	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn("could not close progress recording", "reason", err.Error())
		}
	}()

	return a.inScratchDir(func() error {
		r := runner.New(builder, a.repo, a.telemetry, a.logger)
		return r.Run(ctx, plan, runner.Options{
			NoTest:      cfg.NoTest,
			KeepGoing:   cfg.KeepGoing,
			UploadUser:  cfg.UploadUser,
			UploadToken: uploadToken(),
		})
	})
}

// Plan computes and logs the build decisions without building anything.
func (a *App) Plan(ctx context.Context, cfg RunConfig) error {
	builder := a.newBuilder(cfg.Builder)
	if err := builder.Check(); err != nil {
		return err
	}

	plan, err := a.plan(ctx, cfg, builder)
	if err != nil {
		return err
	}

	for _, planned := range plan {
		a.logger.Info("planned",
			"recipe", planned.Recipe.Name,
			"point", planned.Point.String(),
			"decision", planned.Decision.String(),
		)
	}
	return nil
}

func (a *App) plan(ctx context.Context, cfg RunConfig, builder ports.Builder) ([]domain.PlannedBuild, error) {
	recipes, err := a.meta.Discover(cfg.Patterns)
	if err != nil {
		return nil, zerr.Wrap(err, "recipe discovery failed")
	}

	p := planner.New(a.meta, builder, a.repo, a.logger)
	plan, err := p.Plan(ctx, recipes, planner.Options{
		Axes:        cfg.axes(),
		Platform:    cfg.platform(),
		ChannelUser: cfg.ChannelUser,
		UploadUser:  cfg.UploadUser,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "planning failed")
	}
	return plan, nil
}

// inScratchDir runs fn with the working directory switched to a fresh
// scratch directory. Both the directory removal and the cwd restoration
// happen regardless of fn's outcome.
func (a *App) inScratchDir(fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to read working directory")
	}

	scratch, err := os.MkdirTemp("", "mason-")
	if err != nil {
		return zerr.Wrap(err, "failed to create scratch directory")
	}
	defer func() {
		if err := os.Chdir(prev); err != nil {
			a.logger.Warn("could not restore working directory", "dir", prev, "reason", err.Error())
		}
		if err := os.RemoveAll(scratch); err != nil {
			a.logger.Warn("could not remove scratch directory", "dir", scratch, "reason", err.Error())
		}
	}()

	if err := os.Chdir(scratch); err != nil {
		return zerr.Wrap(err, "failed to enter scratch directory")
	}
	return fn()
}

// uploadToken reads the repository auth token supplied out-of-band.
func uploadToken() string {
	for _, key := range []string{"ANACONDA_TOKEN", "BINSTAR_TOKEN"} {
		if tok := os.Getenv(key); tok != "" {
			return tok
		}
	}
	return ""
}
