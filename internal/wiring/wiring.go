// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/mason/internal/adapters/anaconda"
	_ "go.trai.ch/mason/internal/adapters/conda"
	_ "go.trai.ch/mason/internal/adapters/logger"
	_ "go.trai.ch/mason/internal/adapters/meta"
	_ "go.trai.ch/mason/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/mason/internal/app"
)
