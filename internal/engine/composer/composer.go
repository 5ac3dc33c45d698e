// Package composer merges built artifacts into one conflict-free closure.
package composer

import (
	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Compose folds the artifact sequence into a composed environment.
// Identical name+version pairs deduplicate into one closure entry; a
// second version for an already-seen name is a hard error carrying both
// versions. Conflicts are never silently resolved.
func Compose(artifacts []domain.Artifact) (*domain.Environment, error) {
	env := domain.NewEnvironment()
	for _, a := range artifacts {
		if err := env.Add(a); err != nil {
			return nil, zerr.Wrap(err, "failed to compose environment")
		}
	}
	return env, nil
}
