package ports

import (
	"context"
	"io"

	"go.trai.ch/mason/internal/core/domain"
)

// BuilderFactory constructs a Builder for the configured executable.
// Builders are created per run because the executable is a runtime option.
type BuilderFactory func(executable string) Builder

// BuildOptions carries per-invocation builder settings.
type BuildOptions struct {
	// NoTest disables the recipe's test phase.
	NoTest bool

	// Stdout and Stderr receive the builder's output streams. Nil writers
	// discard the stream.
	Stdout io.Writer
	Stderr io.Writer
}

// Builder invokes the external package builder.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Check verifies the builder executable can be located. It is called
	// once before any build work; failure aborts the whole run.
	Check() error

	// OutputPath returns the artifact path the builder would produce for
	// the recipe at the given matrix point, without building.
	OutputPath(ctx context.Context, recipe *domain.Recipe, point domain.MatrixPoint) (string, error)

	// Build builds the recipe at the given matrix point. A non-zero exit
	// from the builder is returned as an error carrying the exit code.
	Build(ctx context.Context, recipe *domain.Recipe, point domain.MatrixPoint, opts BuildOptions) error
}
