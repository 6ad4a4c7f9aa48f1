package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/anaconda"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/conda"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/meta"      //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			meta.NodeID,
			anaconda.NodeID,
			telemetry.NodeID,
			conda.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	reader, err := graft.Dep[ports.MetadataReader](ctx)
	if err != nil {
		return nil, err
	}

	repo, err := graft.Dep[ports.Repository](ctx)
	if err != nil {
		return nil, err
	}

	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	factory, err := graft.Dep[ports.BuilderFactory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(reader, repo, tel, log, factory), nil
}
