package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/alloy/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest loader Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_loader"
	// LockNodeID is the unique identifier for the lock loader Graft node.
	LockNodeID graft.ID = "adapter.lock_loader"
)

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return &FileManifestLoader{}, nil
		},
	})

	graft.Register(graft.Node[ports.LockLoader]{
		ID:        LockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockLoader, error) {
			return &FileLockLoader{}, nil
		},
	})
}
