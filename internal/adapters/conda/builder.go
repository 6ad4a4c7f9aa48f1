// Package conda provides the builder adapter invoking the external
// package builder executable.
package conda

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Builder = (*Builder)(nil)

// Builder implements ports.Builder by shelling out to the builder
// executable ("conda" by default).
type Builder struct {
	executable string
	logger     ports.Logger
}

// NewBuilder creates a new Builder for the given executable name.
func NewBuilder(executable string, logger ports.Logger) *Builder {
	if executable == "" {
		executable = "conda"
	}
	return &Builder{executable: executable, logger: logger}
}

// Check verifies the builder executable can be located on PATH.
func (b *Builder) Check() error {
	if _, err := exec.LookPath(b.executable); err != nil {
		return zerr.With(domain.ErrBuilderNotFound, "executable", b.executable)
	}
	return nil
}

// OutputPath asks the builder for the artifact path it would produce for
// the recipe at the given matrix point, without building.
func (b *Builder) OutputPath(ctx context.Context, recipe *domain.Recipe, point domain.MatrixPoint) (string, error) {
	cmd := exec.CommandContext(ctx, b.executable, "build", "--output", recipe.Path) //nolint:gosec // executable is operator configuration
	cmd.Env = pointEnvironment(point)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		err = zerr.With(zerr.Wrap(err, "output path query failed"), "recipe", recipe.Name)
		err = zerr.With(err, "point", point.String())
		return "", zerr.With(err, "stderr", strings.TrimSpace(stderr.String()))
	}

	// The builder prints the absolute artifact path as the last line.
	lines := strings.Fields(strings.TrimSpace(stdout.String()))
	if len(lines) == 0 {
		return "", zerr.With(zerr.New("builder printed no output path"), "recipe", recipe.Name)
	}
	return lines[len(lines)-1], nil
}

// Build builds the recipe at the given matrix point. A non-zero exit is
// returned as an error carrying the exit code.
func (b *Builder) Build(ctx context.Context, recipe *domain.Recipe, point domain.MatrixPoint, opts ports.BuildOptions) error {
	args := []string{"build"}
	if opts.NoTest {
		args = append(args, "--no-test")
	}
	args = append(args, recipe.Path)

	b.logger.Info("invoking builder", "recipe", recipe.Name, "point", point.String(), "no_test", opts.NoTest)

	cmd := exec.CommandContext(ctx, b.executable, args...) //nolint:gosec // executable is operator configuration
	cmd.Env = pointEnvironment(point)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "build failed"), "recipe", recipe.Name)
		err = zerr.With(err, "point", point.String())
		return zerr.With(err, "exit_code", exitCode)
	}
	return nil
}

// pointEnvironment extends the process environment with the version pins
// the builder reads for matrix axes (CONDA_PY=27, CONDA_NPY=19, ...).
func pointEnvironment(point domain.MatrixPoint) []string {
	env := os.Environ()
	for _, av := range point.Values {
		env = append(env, axisEnvVar(av.Axis)+"="+strings.ReplaceAll(av.Value, ".", ""))
	}
	return env
}

func axisEnvVar(axis domain.Axis) string {
	switch axis.Name {
	case "python":
		return "CONDA_PY"
	case "numpy":
		return "CONDA_NPY"
	default:
		return "CONDA_" + strings.ToUpper(axis.Name)
	}
}
