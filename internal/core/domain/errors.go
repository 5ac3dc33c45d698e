package domain

import "go.trai.ch/zerr"

var (
	// ErrUnknownPackage is returned when a lock entry references a recipe
	// that is absent from the catalog.
	ErrUnknownPackage = zerr.New("unknown package")

	// ErrDuplicateEntry is returned when a package name is added to a graph
	// or catalog more than once.
	ErrDuplicateEntry = zerr.New("duplicate package entry")

	// ErrOverrideConflict is returned when two extension layers both claim a
	// singular recipe field.
	ErrOverrideConflict = zerr.New("override conflict")

	// ErrEditablePathNotFound is returned when an editable mapping points at
	// a directory that does not exist at resolution time.
	ErrEditablePathNotFound = zerr.New("editable path not found")

	// ErrCycleDetected is returned when the build graph contains a dependency cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnresolvedDependency is returned when a recipe references a build
	// input that has no lock entry.
	ErrUnresolvedDependency = zerr.New("unresolved dependency")

	// ErrVersionConflict is returned when two distinct versions of the same
	// package reach the composed closure.
	ErrVersionConflict = zerr.New("version conflict")

	// ErrBuildFailed is returned when a package's build phases fail.
	ErrBuildFailed = zerr.New("build failed")

	// ErrHashMismatch is returned when fetched source content does not match
	// the lock entry's content hash.
	ErrHashMismatch = zerr.New("content hash mismatch")
)

// Tagged attaches a metadata pair to a sentinel error. The sentinel is
// wrapped first so it stays reachable through errors.Is; zerr.With on a
// bare sentinel copies its message into a new error instead of chaining it.
func Tagged(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
