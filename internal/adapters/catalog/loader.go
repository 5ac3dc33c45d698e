// Package catalog provides the YAML recipe catalog loader.
package catalog

import (
	"os"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// catalogFile represents the structure of the catalog.yaml file.
type catalogFile struct {
	Version int         `yaml:"version"`
	Recipes []recipeDTO `yaml:"recipes"`
}

// recipeDTO represents one default recipe definition.
type recipeDTO struct {
	Name     string    `yaml:"name"`
	Version  string    `yaml:"version"`
	Inputs   []string  `yaml:"inputs"`
	Phases   phasesDTO `yaml:"phases"`
	Artifact struct {
		Kind string `yaml:"kind"`
		Path string `yaml:"path"`
	} `yaml:"artifact"`
}

type phasesDTO struct {
	Setup   []string `yaml:"setup"`
	Build   []string `yaml:"build"`
	Install []string `yaml:"install"`
}

// FileCatalogLoader implements ports.CatalogLoader using a YAML file.
type FileCatalogLoader struct{}

// Load reads the recipe catalog from the given path.
func (l *FileCatalogLoader) Load(path string) (*domain.Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read recipe catalog")
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse recipe catalog")
	}

	recipes := make([]domain.Recipe, 0, len(file.Recipes))
	for _, dto := range file.Recipes {
		if dto.Name == "" || dto.Version == "" {
			return nil, zerr.With(zerr.New("catalog recipe requires name and version"), "name", dto.Name)
		}

		kind := domain.ArtifactKind(dto.Artifact.Kind)
		if kind == "" {
			kind = domain.ArtifactKindArchive
		}

		recipes = append(recipes, domain.Recipe{
			Name:    domain.NewInternedString(dto.Name),
			Version: domain.NewInternedString(dto.Version),
			Inputs:  domain.InternStrings(dto.Inputs),
			Phases: domain.PhaseHooks{
				Setup:   dto.Phases.Setup,
				Build:   dto.Phases.Build,
				Install: dto.Phases.Install,
			},
			Artifact: domain.ArtifactSpec{
				Kind: kind,
				Path: dto.Artifact.Path,
			},
		})
	}

	return domain.NewCatalog(recipes)
}
