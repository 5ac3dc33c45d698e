package ports

import "go.trai.ch/alloy/internal/core/domain"

// BuildRecordStore persists memoization records keyed by
// (name, version, resolved-recipe-hash), so at most one build happens per
// distinct resolved recipe, across runs as well as within one.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildRecordStore interface {
	// Get retrieves the build record for a cache key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.BuildRecord, error)

	// Put stores the build record.
	Put(record domain.BuildRecord) error
}
