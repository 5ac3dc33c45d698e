package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RecipeHash returns a stable content hash of a resolved recipe. Applying
// the override chain twice to identical inputs must yield an identical
// recipe, so the hash doubles as a purity witness and as the cache key
// component that invalidates memoized builds on any recipe change.
func RecipeHash(r Recipe) string {
	h := xxhash.New()

	writeField := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	writeSection := func(ss []string) {
		for _, s := range ss {
			writeField(s)
		}
		_, _ = h.Write([]byte{0})
	}

	writeField(r.Name.String())
	writeField(r.Version.String())

	inputs := make([]string, len(r.Inputs))
	for i, in := range r.Inputs {
		inputs[i] = in.String()
	}
	writeSection(inputs)

	writeSection(r.Phases.Setup)
	writeSection(r.Phases.Build)
	writeSection(r.Phases.Install)

	writeField(string(r.Artifact.Kind))
	writeField(r.Artifact.Path)

	return fmt.Sprintf("%016x", h.Sum64())
}

// CacheKey returns the memoization key for a resolved recipe:
// (name, version, resolved-recipe-hash).
func CacheKey(r Recipe) string {
	return fmt.Sprintf("%s@%s:%s", r.Name.String(), r.Version.String(), RecipeHash(r))
}

// GenerateClosureID creates a deterministic hash from a name->pin map,
// identifying a composed closure for caching and reporting.
func GenerateClosureID(pins map[string]string) string {
	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	slices.Sort(names)

	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(name)
		builder.WriteString(":")
		builder.WriteString(pins[name])
		builder.WriteString(";")
	}

	hash := sha256.Sum256([]byte(builder.String()))
	return hex.EncodeToString(hash[:])
}
