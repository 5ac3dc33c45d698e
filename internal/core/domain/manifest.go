package domain

// Manifest declares a project's direct dependencies, its editable mappings,
// and any declarative override layers. Consumed read-only.
type Manifest struct {
	// Dependencies maps package names to requested version constraints.
	// The lock description, not this map, drives resolution.
	Dependencies map[string]string

	// Editables maps package names to live local source directories that
	// supersede the built artifact for that package.
	Editables map[string]string

	// Overrides are declarative override layers, applied in declaration
	// order after the base layer.
	Overrides []OverridePatchLayer
}

// OverridePatchLayer is a named declarative override layer: per-package
// recipe patches the registry compiles into transforms.
type OverridePatchLayer struct {
	Name     string
	Packages map[string]RecipePatch
}

// RecipePatch is a declarative recipe edit. Nil slices leave the super
// value untouched; AddInputs always extends it.
type RecipePatch struct {
	// AddInputs appends build inputs to the super recipe's input list.
	AddInputs []string

	// Setup, Build, and Install replace the corresponding phase hooks
	// when non-nil.
	Setup   []string
	Build   []string
	Install []string

	// ArtifactKind replaces the output artifact kind when non-empty.
	// The kind is singular: two layers patching it conflict.
	ArtifactKind string

	// ArtifactPath replaces the output path when non-empty.
	ArtifactPath string
}
