// Package manifest persists compile summaries in a flat JSON file so hashes
// and dependency lists survive across sessions.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore over a single JSON file keyed by
// original hash.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.CompileInfo
}

// NewStore creates a manifest store backed by the file at the given path.
// A missing file starts an empty manifest.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.CompileInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
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
		return zerr.Wrap(err, "failed to read compile manifest")
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal compile manifest")
	}
	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal compile manifest")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create manifest directory")
	}
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write compile manifest")
	}
	return nil
}

// Record upserts the summary keyed by its original hash.
func (s *Store) Record(info domain.CompileInfo) error {
	s.mu.Lock()
	s.cache[info.OriginalHash] = info
	s.mu.Unlock()

	return s.save()
}

// Lookup returns the stored summary for originalHash.
func (s *Store) Lookup(originalHash string) (domain.CompileInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.cache[originalHash]
	return info, ok
}

// All lists the stored summaries sorted by record id.
func (s *Store) All() []domain.CompileInfo {
	s.mu.RLock()
	out := make([]domain.CompileInfo, 0, len(s.cache))
	for _, info := range s.cache {
		out = append(out, info)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].RecordID < out[j].RecordID })
	return out
}
