package ports

import (
	"context"

	"go.trai.ch/alloy/internal/core/domain"
)

// SourceFetcher resolves lock entry source references to local directories,
// verifying content hashes. External collaborator; retries live here, not
// in the engine.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Fetch resolves the entry's source reference and returns the local
	// source directory, verified against the entry's content hash.
	Fetch(ctx context.Context, entry domain.LockEntry) (dir string, err error)

	// Prefetch fetches every lock entry except the named exclusions,
	// concurrently, failing on the first hash mismatch.
	Prefetch(ctx context.Context, lock *domain.Lock, exclude map[string]string) error
}
