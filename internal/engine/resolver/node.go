package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/alloy/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/alloy/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/alloy/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/alloy/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/alloy/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/alloy/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fetch.NodeID,
			shell.NodeID,
			cas.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			fetcher, err := graft.Dep[ports.SourceFetcher](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.BuildExecutor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildRecordStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(fetcher, executor, store, tel, log), nil
		},
	})
}
