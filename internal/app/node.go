package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/alloy/internal/adapters/catalog" //nolint:depguard // Wired in app layer
	"go.trai.ch/alloy/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/alloy/internal/adapters/fetch"   //nolint:depguard // Wired in app layer
	"go.trai.ch/alloy/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/alloy/internal/core/ports"
	"go.trai.ch/alloy/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the application entry points the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ManifestNodeID,
			config.LockNodeID,
			catalog.NodeID,
			fetch.NodeID,
			resolver.NodeID,
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
	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockLoader](ctx)
	if err != nil {
		return nil, err
	}

	catalogs, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}

	fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(manifests, locks, catalogs, fetcher, res, log), nil
}
