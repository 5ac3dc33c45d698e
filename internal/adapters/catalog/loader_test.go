package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/alloy/internal/adapters/catalog"
	"go.trai.ch/alloy/internal/core/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileCatalogLoader_Load(t *testing.T) {
	path := writeCatalog(t, `
version: 1
recipes:
  - name: curl
    version: "8.0"
    inputs: [openssl, zlib]
    phases:
      setup:
        - ./configure
      build:
        - make
      install:
        - make install
    artifact:
      kind: archive
      path: out/curl.tar
  - name: zlib
    version: "1.3"
    phases:
      build:
        - make
`)

	loader := &catalog.FileCatalogLoader{}
	c, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count())

	curl, err := c.Lookup("curl", "8.0")
	require.NoError(t, err)
	assert.Len(t, curl.Inputs, 2)
	assert.Equal(t, []string{"./configure"}, curl.Phases.Setup)
	assert.Equal(t, domain.ArtifactKindArchive, curl.Artifact.Kind)
	assert.Equal(t, "out/curl.tar", curl.Artifact.Path)
}

func TestFileCatalogLoader_Load_DefaultsKindToArchive(t *testing.T) {
	path := writeCatalog(t, `
recipes:
  - name: zlib
    version: "1.3"
`)

	loader := &catalog.FileCatalogLoader{}
	c, err := loader.Load(path)
	require.NoError(t, err)

	r, err := c.Lookup("zlib", "1.3")
	require.NoError(t, err)
	assert.Equal(t, domain.ArtifactKindArchive, r.Artifact.Kind)
}

func TestFileCatalogLoader_Load_RejectsAnonymousRecipe(t *testing.T) {
	path := writeCatalog(t, `
recipes:
  - version: "1.3"
`)

	loader := &catalog.FileCatalogLoader{}
	_, err := loader.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog recipe requires name and version")
}

func TestFileCatalogLoader_Load_RejectsDuplicates(t *testing.T) {
	path := writeCatalog(t, `
recipes:
  - name: zlib
    version: "1.3"
  - name: zlib
    version: "1.3"
`)

	loader := &catalog.FileCatalogLoader{}
	_, err := loader.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateEntry))
}
