package domain

import "slices"

// ArtifactKind classifies the output shape a recipe produces. The kind is
// a singular field under override layering: two extension layers that both
// change it conflict instead of silently merging.
type ArtifactKind string

const (
	// ArtifactKindArchive is a packed build output (the default).
	ArtifactKindArchive ArtifactKind = "archive"
	// ArtifactKindTree is an unpacked directory tree output.
	ArtifactKindTree ArtifactKind = "tree"
	// ArtifactKindEditable marks an artifact that points at a live local
	// source directory instead of a build output.
	ArtifactKindEditable ArtifactKind = "editable"
)

// PhaseHooks holds the shell hooks for each build phase, run in
// setup, build, install order.
type PhaseHooks struct {
	Setup   []string
	Build   []string
	Install []string
}

// Empty reports whether no phase declares any hook.
func (p PhaseHooks) Empty() bool {
	return len(p.Setup) == 0 && len(p.Build) == 0 && len(p.Install) == 0
}

// ArtifactSpec describes the output a recipe produces.
type ArtifactSpec struct {
	// Kind is the output shape. Singular under override layering.
	Kind ArtifactKind

	// Path is the output location, relative to the artifact root unless
	// absolute. Editable injection replaces it with the live directory.
	Path string
}

// Recipe is the declarative build description for one package: its build
// inputs (by package name), its phase hooks, and its output shape.
// One recipe instance exists per lock entry; the catalog owns the default
// until override layers produce the resolved copy.
type Recipe struct {
	Name    InternedString
	Version InternedString

	// Inputs are build-input package names. Mergeable under override
	// layering; layers normally extend the super value.
	Inputs []InternedString

	Phases   PhaseHooks
	Artifact ArtifactSpec
}

// Clone returns a deep copy of the recipe. Override transforms receive
// clones so no layer can alias another layer's slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Inputs = slices.Clone(r.Inputs)
	c.Phases.Setup = slices.Clone(r.Phases.Setup)
	c.Phases.Build = slices.Clone(r.Phases.Build)
	c.Phases.Install = slices.Clone(r.Phases.Install)
	return c
}

// InternStrings converts a slice of strings into interned strings.
func InternStrings(strs []string) []InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]InternedString, len(strs))
	for i, s := range strs {
		res[i] = NewInternedString(s)
	}
	return res
}
