// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/alloy/internal/core/domain"

// ManifestLoader loads the project manifest (dependencies, editable
// mappings, declarative override layers).
//
//go:generate go run go.uber.org/mock/mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest from the given path.
	Load(path string) (*domain.Manifest, error)
}

// LockLoader loads the resolved lock description.
type LockLoader interface {
	// Load reads the lock description from the given path.
	Load(path string) (*domain.Lock, error)
}

// CatalogLoader loads the default recipe catalog.
type CatalogLoader interface {
	// Load reads the recipe catalog from the given path.
	Load(path string) (*domain.Catalog, error)
}
