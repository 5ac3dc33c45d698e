// Package config provides the manifest and lock description loaders.
package config

import (
	"os"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileManifestLoader implements ports.ManifestLoader using a YAML file.
type FileManifestLoader struct{}

// Load reads the manifest from the given path.
func (l *FileManifestLoader) Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	manifest := &domain.Manifest{
		Dependencies: file.Dependencies,
		Editables:    file.Editable,
	}
	for _, layer := range file.Overrides {
		if layer.Name == "" {
			return nil, zerr.New("override layer requires a name")
		}
		manifest.Overrides = append(manifest.Overrides, domain.OverridePatchLayer{
			Name:     layer.Name,
			Packages: patchesFromDTO(layer.Packages),
		})
	}

	return manifest, nil
}

func patchesFromDTO(dtos map[string]recipePatchDTO) map[string]domain.RecipePatch {
	patches := make(map[string]domain.RecipePatch, len(dtos))
	for name, dto := range dtos {
		patches[name] = domain.RecipePatch{
			AddInputs:    dto.AddInputs,
			Setup:        dto.Setup,
			Build:        dto.Build,
			Install:      dto.Install,
			ArtifactKind: dto.ArtifactKind,
			ArtifactPath: dto.ArtifactPath,
		}
	}
	return patches
}

// FileLockLoader implements ports.LockLoader using a YAML file.
type FileLockLoader struct{}

// Load reads the lock description from the given path. Entry names must be
// unique; the map representation guarantees it structurally.
func (l *FileLockLoader) Load(path string) (*domain.Lock, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read lock description")
	}

	var file lockFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse lock description")
	}

	lock := &domain.Lock{
		Version: file.Version,
		Entries: make(map[string]domain.LockEntry, len(file.Packages)),
	}
	for name, dto := range file.Packages {
		if dto.Version == "" {
			return nil, zerr.With(zerr.New("lock entry requires a version"), "package", name)
		}
		lock.Entries[name] = domain.LockEntry{
			Name:    domain.NewInternedString(name),
			Version: domain.NewInternedString(dto.Version),
			Hash:    dto.Hash,
			Source:  dto.Source,
			Extras:  dto.Extras,
		}
	}

	return lock, nil
}
