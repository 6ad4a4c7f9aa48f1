// Package runner executes a build plan sequentially: builds surviving
// matrix points in order and uploads resulting artifacts when configured.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options configures a single driver run.
type Options struct {
	// NoTest disables the recipes' test phases.
	NoTest bool

	// KeepGoing selects the collect-all-failures policy: a failed build is
	// recorded and the driver continues with the next point. The default
	// is to stop at the first failure.
	KeepGoing bool

	// UploadUser is the target user for uploads of successful builds.
	UploadUser string

	// UploadToken optionally authenticates uploads.
	UploadToken string
}

// Runner is the sequential build/upload driver.
type Runner struct {
	builder   ports.Builder
	repo      ports.Repository
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a Runner.
func New(builder ports.Builder, repo ports.Repository, telemetry ports.Telemetry, logger ports.Logger) *Runner {
	return &Runner{builder: builder, repo: repo, telemetry: telemetry, logger: logger}
}

// Run walks the plan in order. Skip decisions are rendered as cached
// vertices; build decisions invoke the builder and, on success with an
// upload target, publish the artifact. The failure policy decides whether
// a build failure stops the run or is collected into a summary.
func (r *Runner) Run(ctx context.Context, plan []domain.PlannedBuild, opts Options) error {
	var failures error
	failed := 0

	for _, planned := range plan {
		if err := ctx.Err(); err != nil {
			return errors.Join(failures, err)
		}

		if err := r.runOne(ctx, planned, opts); err != nil {
			if !opts.KeepGoing {
				return err
			}
			failed++
			failures = errors.Join(failures, err)
		}
	}

	if failures != nil {
		r.logger.Warn("build batch finished with failures", "failed", failed, "total", len(plan))
		return errors.Join(zerr.With(domain.ErrBuildFailed, "failed", failed), failures)
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, planned domain.PlannedBuild, opts Options) error {
	recipe, point := planned.Recipe, planned.Point
	name := fmt.Sprintf("%s [%s]", recipe.Name, strings.Join(point.Tags(), " "))
	ctx, vertex := r.telemetry.Record(ctx, name)

	if !planned.Decision.ShouldBuild() {
		r.logSkip(planned)
		vertex.Cached()
		vertex.Complete(nil)
		return nil
	}

	err := r.builder.Build(ctx, recipe, point, ports.BuildOptions{
		NoTest: opts.NoTest,
		Stdout: vertex.Stdout(),
		Stderr: vertex.Stderr(),
	})
	if err == nil && planned.Decision == domain.DecisionBuildUpload {
		err = r.upload(ctx, planned, opts)
	}
	vertex.Complete(err)
	return err
}

func (r *Runner) logSkip(planned domain.PlannedBuild) {
	args := []any{
		"recipe", planned.Recipe.Name,
		"point", planned.Point.String(),
		"decision", planned.Decision.String(),
	}
	if planned.Remote != nil {
		args = append(args,
			"full_name", planned.Remote.FullName,
			"uploaded_at", planned.Remote.UploadedAt,
			"checksum", planned.Remote.Checksum,
		)
	}
	r.logger.Info("skipping build", args...)
}

func (r *Runner) upload(ctx context.Context, planned domain.PlannedBuild, opts Options) error {
	if digest, err := artifactDigest(planned.OutputPath); err != nil {
		r.logger.Warn("could not digest artifact", "artifact", planned.OutputPath, "reason", err.Error())
	} else {
		r.logger.Info("uploading artifact",
			"recipe", planned.Recipe.Name,
			"point", planned.Point.String(),
			"digest", digest,
		)
	}
	return r.repo.Upload(ctx, opts.UploadUser, planned.OutputPath, opts.UploadToken)
}

// artifactDigest computes the xxhash content digest of a built artifact
// for the upload audit log.
func artifactDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the builder
	if err != nil {
		return "", zerr.Wrap(err, "failed to open artifact")
	}
	defer f.Close() //nolint:errcheck // read-only file

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", zerr.Wrap(err, "failed to hash artifact")
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
