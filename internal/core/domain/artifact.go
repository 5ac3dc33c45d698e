package domain

import "time"

// Artifact is the resolved output for one package: either a built output
// under the artifact root, or a live source directory for editable packages.
type Artifact struct {
	Name     InternedString
	Version  InternedString
	Path     string
	Editable bool
}

// BuildRecord is the persisted memoization entry for one resolved recipe.
// It is keyed by (name, version, recipe hash) so a recipe change always
// misses while an identical resolved recipe is reused across runs.
type BuildRecord struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	RecipeHash   string    `json:"recipe_hash"`
	ArtifactPath string    `json:"artifact_path"`
	Timestamp    time.Time `json:"timestamp"`
}
