// Package cas implements the persistent build record store backing
// resolution memoization.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/alloy/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.BuildRecordStore using a flat JSON file keyed by
// (name, version, resolved-recipe-hash). A record whose recipe hash has
// been superseded is unreachable through Get, so Put prunes the stale
// records sharing the new record's name@version prefix.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildRecord
}

// NewStore creates a new BuildRecordStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.BuildRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get retrieves the build record for a cache key. A miss is (nil, nil).
func (s *Store) Get(key string) (*domain.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[key]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the build record and drops records for the same package and
// version under an older recipe hash.
func (s *Store) Put(record domain.BuildRecord) error {
	want := fmt.Sprintf("%s@%s:%s", record.Name, record.Version, record.RecipeHash)
	if record.Key != want {
		err := zerr.New("build record key does not match its fields")
		return zerr.With(zerr.With(err, "key", record.Key), "expected", want)
	}

	s.mu.Lock()
	prefix := record.Name + "@" + record.Version + ":"
	for key := range s.cache {
		if key != record.Key && strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
	s.cache[record.Key] = record
	s.mu.Unlock()

	return s.save()
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read build record store")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal build record store")
	}

	return nil
}

// save writes the store through a temporary file so a crash mid-write
// never leaves a truncated record file behind.
func (s *Store) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build record store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build record store")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary record file")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to write build record store")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to close temporary record file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return zerr.Wrap(err, "failed to replace build record store")
	}

	return nil
}
