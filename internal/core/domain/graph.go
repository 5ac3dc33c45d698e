// Package domain contains the core model for environment synthesis: lock
// entries, build recipes, the inter-package build graph, and the composed
// closure.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Graph is the directed acyclic build graph over resolved recipes, with an
// edge from a package to each of its build inputs.
type Graph struct {
	recipes map[InternedString]Recipe
	order   []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		recipes: make(map[InternedString]Recipe),
	}
}

// AddRecipe adds a resolved recipe to the graph.
// It returns an error if a recipe with the same package name already exists.
func (g *Graph) AddRecipe(r Recipe) error {
	if _, exists := g.recipes[r.Name]; exists {
		return Tagged(ErrDuplicateEntry, "package", r.Name.String())
	}
	g.recipes[r.Name] = r
	return nil
}

// Count returns the number of recipes in the graph.
func (g *Graph) Count() int {
	return len(g.recipes)
}

// Recipe returns the recipe for the given package name.
func (g *Graph) Recipe(name InternedString) (Recipe, bool) {
	r, ok := g.recipes[name]
	return r, ok
}

// sortedNames returns all package names in lexical order. Resolution order
// must be a deterministic function of the inputs, so every graph traversal
// starts from this order.
func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.recipes))
	for name := range g.recipes {
		names = append(names, name)
	}
	slices.SortFunc(names, compareNames)
	return names
}

// compareNames orders interned package names lexically.
func compareNames(a, b InternedString) int {
	switch {
	case a.String() < b.String():
		return -1
	case a.String() > b.String():
		return 1
	default:
		return 0
	}
}

// Validate checks that every build input resolves to a graph node and that
// the graph is acyclic, then populates the execution order. The order is a
// topological sort with a lexical tie-break, so identical inputs always
// produce the identical order.
func (g *Graph) Validate() error {
	if err := g.checkInputs(); err != nil {
		return err
	}
	if err := g.checkCycles(); err != nil {
		return err
	}
	g.order = g.topoOrder()
	return nil
}

// checkInputs verifies every referenced build input has a node.
func (g *Graph) checkInputs() error {
	for _, name := range g.sortedNames() {
		for _, input := range g.recipes[name].Inputs {
			if _, ok := g.recipes[input]; !ok {
				err := Tagged(ErrUnresolvedDependency, "package", name.String())
				return zerr.With(err, "missing_input", input.String())
			}
		}
	}
	return nil
}

// checkCycles runs a depth-first search over all components and reports the
// first cycle found with its full member path.
func (g *Graph) checkCycles() error {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[InternedString]int, len(g.recipes))
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		state[u] = visiting
		path = append(path, u)

		for _, input := range g.recipes[u].Inputs {
			if state[input] == visiting {
				return g.cycleError(path, input)
			}
			if state[input] == unvisited {
				if err := visit(input); err != nil {
					return err
				}
			}
		}

		state[u] = visited
		path = path[:len(path)-1]
		return nil
	}

	for _, name := range g.sortedNames() {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError constructs an error carrying the cycle members in graph order.
func (g *Graph) cycleError(path []InternedString, entry InternedString) error {
	start := slices.Index(path, entry)
	members := make([]string, 0, len(path)-start+1)
	for _, node := range path[start:] {
		members = append(members, node.String())
	}

	cyclePath := ""
	for _, m := range members {
		cyclePath += m + " -> "
	}
	cyclePath += entry.String()

	err := Tagged(ErrCycleDetected, "cycle", cyclePath)
	return zerr.With(err, "members", members)
}

// topoOrder produces a dependency-first order using Kahn's algorithm with a
// lexically sorted ready queue.
func (g *Graph) topoOrder() []InternedString {
	dependents := g.dependentIndex()
	inDegree := make(map[InternedString]int, len(g.recipes))
	for _, r := range g.recipes {
		inDegree[r.Name] = len(r.Inputs)
	}

	var ready []InternedString
	for _, name := range g.sortedNames() {
		if inDegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]InternedString, 0, len(g.recipes))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, dep := range dependents[next] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = insertSorted(ready, dep)
			}
		}
	}
	return order
}

// dependentIndex maps each package to the packages that list it as a build
// input, each list in lexical order.
func (g *Graph) dependentIndex() map[InternedString][]InternedString {
	idx := make(map[InternedString][]InternedString, len(g.recipes))
	for _, name := range g.sortedNames() {
		for _, input := range g.recipes[name].Inputs {
			idx[input] = append(idx[input], name)
		}
	}
	return idx
}

// Dependents returns the packages that list the given package as a build
// input, in lexical order.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependentIndex()[name]
}

// Walk returns an iterator that yields recipes in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Recipe] {
	return func(yield func(Recipe) bool) {
		for _, name := range g.order {
			if !yield(g.recipes[name]) {
				return
			}
		}
	}
}

// insertSorted inserts name into a lexically sorted slice, keeping it sorted.
func insertSorted(sorted []InternedString, name InternedString) []InternedString {
	i, _ := slices.BinarySearchFunc(sorted, name, compareNames)
	return slices.Insert(sorted, i, name)
}
