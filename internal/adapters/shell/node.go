package shell

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/alloy/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/alloy/internal/core/ports"
)

// NodeID is the unique identifier for the build executor Graft node.
const NodeID graft.ID = "adapter.build_executor"

func init() {
	graft.Register(graft.Node[ports.BuildExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BuildExecutor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, filepath.Join(".alloy", "artifacts")), nil
		},
	})
}
