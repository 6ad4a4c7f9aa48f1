// Package telemetry provides progress recording adapters.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a Telemetry implementation that records nothing. It is used in
// tests and when progress rendering is disabled.
type Noop struct{}

// NewNoop creates a new Noop telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close is a no-op.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer  { return io.Discard }
func (noopVertex) Stderr() io.Writer  { return io.Discard }
func (noopVertex) Cached()            {}
func (noopVertex) Complete(err error) {}
