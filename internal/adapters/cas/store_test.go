package cas_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/alloy/internal/adapters/cas"
	"go.trai.ch/alloy/internal/core/domain"
)

func testRecord(key string) domain.BuildRecord {
	return domain.BuildRecord{
		Key:          key,
		Name:         "zlib",
		Version:      "1.3",
		RecipeHash:   "deadbeefdeadbeef",
		ArtifactPath: "/store/zlib-1.3",
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_PutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	record := testRecord("zlib@1.3:deadbeefdeadbeef")
	require.NoError(t, store.Put(record))

	got, err := store.Get(record.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ArtifactPath, got.ArtifactPath)
	assert.Equal(t, record.RecipeHash, got.RecipeHash)
}

func TestStore_GetMissingKey(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	got, err := store.Get("ghost@1.0:0000000000000000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.json")

	first, err := cas.NewStore(path)
	require.NoError(t, err)
	record := testRecord("zlib@1.3:deadbeefdeadbeef")
	require.NoError(t, first.Put(record))

	second, err := cas.NewStore(path)
	require.NoError(t, err)
	got, err := second.Get(record.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ArtifactPath, got.ArtifactPath)
	assert.True(t, record.Timestamp.Equal(got.Timestamp))
}

func TestStore_PutPrunesSupersededRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	old := testRecord("zlib@1.3:deadbeefdeadbeef")
	require.NoError(t, store.Put(old))

	// A new recipe hash for the same package and version supersedes the
	// old record; no lookup can reach it afterwards.
	updated := old
	updated.RecipeHash = "cafebabecafebabe"
	updated.Key = "zlib@1.3:cafebabecafebabe"
	updated.ArtifactPath = "/store/zlib-1.3-r2"
	require.NoError(t, store.Put(updated))

	got, err := store.Get(old.Key)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.Get(updated.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "/store/zlib-1.3-r2", got.ArtifactPath)
}

func TestStore_PutKeepsOtherVersions(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	v13 := testRecord("zlib@1.3:deadbeefdeadbeef")
	require.NoError(t, store.Put(v13))

	v14 := v13
	v14.Version = "1.4"
	v14.Key = "zlib@1.4:deadbeefdeadbeef"
	require.NoError(t, store.Put(v14))

	got, err := store.Get(v13.Key)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestStore_PutRejectsMismatchedKey(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)

	record := testRecord("openssl@3.1:deadbeefdeadbeef")
	err = store.Put(record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	got, getErr := store.Get(record.Key)
	require.NoError(t, getErr)
	assert.Nil(t, got)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "never-written.json"))
	require.NoError(t, err)

	got, err := store.Get("anything")
	require.NoError(t, err)
	assert.Nil(t, got)
}
