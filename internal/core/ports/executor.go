package ports

import (
	"context"

	"go.trai.ch/alloy/internal/core/domain"
)

// BuildExecutor runs one package's build phases. It is the native
// build/compile collaborator; the engine never shells out directly.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type BuildExecutor interface {
	// Build runs the recipe's setup, build, and install hooks against the
	// fetched source directory and returns the produced artifact path.
	//
	// Build duration bounds belong to the executor, not the engine; the
	// context carries cancellation only.
	Build(ctx context.Context, recipe *domain.Recipe, sourceDir string) (artifactPath string, err error)
}
