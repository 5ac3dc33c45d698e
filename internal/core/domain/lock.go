package domain

import "slices"

// LockEntry is one fully pinned package from the lock description.
// Entries are immutable once loaded; no version solving happens here.
type LockEntry struct {
	// Name is the canonical package name, unique per environment.
	Name InternedString

	// Version is the pinned version string (e.g., "1.4.2").
	Version InternedString

	// Hash is the content hash of the package source (e.g., "xxh64:...").
	Hash string

	// Source is the source reference the fetcher resolves (URL or local path).
	Source string

	// Extras are declared build-time/runtime extras for the package.
	Extras []string
}

// Lock represents the resolved dependency set consumed by the engine.
type Lock struct {
	// Version is the lock format version, kept for schema migrations.
	Version int

	// Entries maps canonical package names to their lock entries.
	Entries map[string]LockEntry
}

// Entry returns the lock entry for the given package name.
func (l *Lock) Entry(name string) (LockEntry, bool) {
	e, ok := l.Entries[name]
	return e, ok
}

// Names returns all locked package names in lexical order.
func (l *Lock) Names() []string {
	names := make([]string, 0, len(l.Entries))
	for name := range l.Entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
