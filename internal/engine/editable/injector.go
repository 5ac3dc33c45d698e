// Package editable implements the editable injector: substituting a
// package's built artifact with a live local source tree.
package editable

import (
	"os"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Injector replaces resolved build nodes with references to live source
// directories. Editable nodes skip their build phase entirely but keep
// their dependency edges, so the editable package's declared dependencies
// still end up in the closure.
type Injector struct {
	mappings map[string]string
}

// NewInjector creates an injector from a package name to directory mapping.
func NewInjector(mappings map[string]string) *Injector {
	return &Injector{mappings: mappings}
}

// Mapped returns the mapped directory for a package name, if any.
func (i *Injector) Mapped(name string) (string, bool) {
	dir, ok := i.mappings[name]
	return dir, ok
}

// Mappings returns the raw name to directory mapping.
func (i *Injector) Mappings() map[string]string {
	return i.mappings
}

// Apply rewrites the node in place when its package has an editable
// mapping: the artifact becomes a direct reference to the mapped directory,
// the phase hooks are cleared, and the node is marked built immediately
// (editable nodes resolve synchronously during graph construction).
//
// Fails if the mapped directory does not exist at resolution time.
func (i *Injector) Apply(node *domain.BuildNode) error {
	dir, ok := i.mappings[node.Name().String()]
	if !ok {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		zerrErr := domain.Tagged(domain.ErrEditablePathNotFound, "package", node.Name().String())
		return zerr.With(zerrErr, "path", dir)
	}

	node.Editable = true
	node.Recipe.Phases = domain.PhaseHooks{}
	node.Recipe.Artifact = domain.ArtifactSpec{
		Kind: domain.ArtifactKindEditable,
		Path: dir,
	}
	node.Artifact = &domain.Artifact{
		Name:     node.Recipe.Name,
		Version:  node.Recipe.Version,
		Path:     dir,
		Editable: true,
	}
	node.Status = domain.StatusBuilt
	return nil
}
