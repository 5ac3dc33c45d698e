// Package overrides implements the layered recipe override registry.
//
// Overrides are an explicit ordered list of transforms applied via left
// fold: the base recipe flows through every matching layer in registration
// order, and each transform receives the previous layer's output as its
// "super" value. A layer can therefore wrap or extend the recipe it
// inherits (append one build input, add a phase hook) instead of replacing
// it wholesale. Mergeable fields follow last-registered-wins; singular
// fields fail loudly when two extension layers claim them.
package overrides

import (
	"slices"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Transform is a pure recipe transform. It receives a clone of the
// previous layer's result and returns the replacement recipe; it must not
// retain or mutate shared state.
type Transform func(super domain.Recipe) domain.Recipe

// Rule is one package's transform within a layer, with an optional
// version predicate. A nil Match applies to every version.
type Rule struct {
	Match func(version string) bool
	Apply Transform
}

// Layer is a named set of override rules keyed by package name.
type Layer struct {
	Name  string
	Rules map[string]Rule
}

// Registry applies override layers to catalog recipes. A registry is
// immutable after construction: Extend returns a new registry, and Resolve
// has no hidden state, so concurrent resolution reads need no locking.
type Registry struct {
	layers []Layer
}

// NewRegistry creates a registry holding only the given base layers.
func NewRegistry(base ...Layer) *Registry {
	return &Registry{layers: slices.Clone(base)}
}

// Extend returns a new registry with the extension layer appended after
// every existing layer. The receiver is left untouched.
func (r *Registry) Extend(layer Layer) *Registry {
	layers := make([]Layer, 0, len(r.layers)+1)
	layers = append(layers, r.layers...)
	layers = append(layers, layer)
	return &Registry{layers: layers}
}

// Layers returns the names of all registered layers in application order.
func (r *Registry) Layers() []string {
	names := make([]string, len(r.layers))
	for i, l := range r.layers {
		names[i] = l.Name
	}
	return names
}

// Resolve applies the full layer chain to the base recipe. Applying the
// chain twice with identical inputs yields an identical recipe.
//
// The output artifact kind is singular: if more than one layer changes it,
// Resolve fails naming the claiming layers and the field.
func (r *Registry) Resolve(name, version string, base domain.Recipe) (domain.Recipe, error) {
	resolved := base.Clone()
	var kindClaims []string

	for _, layer := range r.layers {
		rule, ok := layer.Rules[name]
		if !ok {
			continue
		}
		if rule.Match != nil && !rule.Match(version) {
			continue
		}

		super := resolved.Clone()
		next := rule.Apply(super)

		if next.Artifact.Kind != resolved.Artifact.Kind {
			kindClaims = append(kindClaims, layer.Name)
		}
		resolved = next
	}

	if len(kindClaims) > 1 {
		err := domain.Tagged(domain.ErrOverrideConflict, "package", name)
		err = zerr.With(err, "field", "artifact.kind")
		return domain.Recipe{}, zerr.With(err, "layers", kindClaims)
	}

	return resolved, nil
}

// MatchExact returns a version predicate matching one exact version.
func MatchExact(version string) func(string) bool {
	return func(v string) bool { return v == version }
}
