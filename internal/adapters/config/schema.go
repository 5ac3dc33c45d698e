package config

// manifestFile represents the structure of the alloy.yaml manifest.
type manifestFile struct {
	Version      string                  `yaml:"version"`
	Dependencies map[string]string       `yaml:"dependencies"`
	Editable     map[string]string       `yaml:"editable"`
	Overrides    []overrideLayerDTO      `yaml:"overrides"`
}

// overrideLayerDTO represents one named declarative override layer.
type overrideLayerDTO struct {
	Name     string                    `yaml:"name"`
	Packages map[string]recipePatchDTO `yaml:"packages"`
}

// recipePatchDTO represents a declarative recipe edit for one package.
type recipePatchDTO struct {
	AddInputs    []string `yaml:"addInputs"`
	Setup        []string `yaml:"setup"`
	Build        []string `yaml:"build"`
	Install      []string `yaml:"install"`
	ArtifactKind string   `yaml:"artifactKind"`
	ArtifactPath string   `yaml:"artifactPath"`
}

// lockFile represents the structure of the alloy.lock.yaml description.
type lockFile struct {
	Version  int                     `yaml:"version"`
	Packages map[string]lockEntryDTO `yaml:"packages"`
}

// lockEntryDTO represents one pinned package in the lock description.
type lockEntryDTO struct {
	Version string   `yaml:"version"`
	Hash    string   `yaml:"hash"`
	Source  string   `yaml:"source"`
	Extras  []string `yaml:"extras"`
}
