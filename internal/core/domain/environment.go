package domain

import (
	"fmt"
	"io"
	"slices"

	"go.trai.ch/zerr"
)

// Environment is the composed, conflict-free closure: one artifact per
// distinct package name. It is the only product of a resolution pass that
// outlives the process invocation.
type Environment struct {
	entries map[string]Artifact
}

// NewEnvironment creates a new empty Environment.
func NewEnvironment() *Environment {
	return &Environment{
		entries: make(map[string]Artifact),
	}
}

// Add inserts an artifact into the closure. A second artifact for an
// already-seen name deduplicates when name and version are identical and
// fails with both versions otherwise. Conflicts are never silently resolved.
func (e *Environment) Add(a Artifact) error {
	existing, ok := e.entries[a.Name.String()]
	if !ok {
		e.entries[a.Name.String()] = a
		return nil
	}
	if existing.Version == a.Version {
		return nil
	}
	err := Tagged(ErrVersionConflict, "package", a.Name.String())
	err = zerr.With(err, "existing_version", existing.Version.String())
	return zerr.With(err, "conflicting_version", a.Version.String())
}

// Len returns the number of closure entries.
func (e *Environment) Len() int {
	return len(e.entries)
}

// Lookup returns the closure entry for the given package name.
func (e *Environment) Lookup(name string) (Artifact, bool) {
	a, ok := e.entries[name]
	return a, ok
}

// Satisfies reports whether the closure already contains the lock entry's
// exact name and version, for incremental reuse.
func (e *Environment) Satisfies(entry LockEntry) bool {
	a, ok := e.entries[entry.Name.String()]
	return ok && a.Version == entry.Version
}

// Artifacts returns the closure entries sorted by package name.
func (e *Environment) Artifacts() []Artifact {
	names := make([]string, 0, len(e.entries))
	for name := range e.entries {
		names = append(names, name)
	}
	slices.Sort(names)

	artifacts := make([]Artifact, 0, len(names))
	for _, name := range names {
		artifacts = append(artifacts, e.entries[name])
	}
	return artifacts
}

// ID returns the deterministic closure identity derived from every entry's
// name, version, and artifact path.
func (e *Environment) ID() string {
	pins := make(map[string]string, len(e.entries))
	for name, a := range e.entries {
		pins[name] = a.Version.String() + "@" + a.Path
	}
	return GenerateClosureID(pins)
}

// Render writes the on-disk closure representation: one record per line of
// `name, version, artifact-path`, sorted by name so identical inputs
// reproduce the bytes exactly.
func (e *Environment) Render(w io.Writer) error {
	for _, a := range e.Artifacts() {
		if _, err := fmt.Fprintf(w, "%s, %s, %s\n", a.Name.String(), a.Version.String(), a.Path); err != nil {
			return zerr.Wrap(err, "failed to render closure entry")
		}
	}
	return nil
}
