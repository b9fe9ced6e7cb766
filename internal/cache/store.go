// Package cache persists raw dataset text between process runs as
// plain files under a base directory, keyed "<kind>/<country-id>.txt".
package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store is an on-disk text blob store. The directory may be shared
// across process instances; reads and writes are unlocked, so two
// processes first-fetching the same dataset can race and each write
// the same content. That is tolerated: the content is idempotent, the
// loser just rewrites identical bytes.
type Store struct {
	dir string
}

// DefaultDir returns the process-wide default cache directory.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "geonames")
}

// NewStore creates a Store rooted at dir, or at DefaultDir when dir is
// empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{dir: dir}
}

// Dir returns the store's base directory.
func (s *Store) Dir() string { return s.dir }

// Read returns the cached text for key and whether it was present. A
// missing file is a miss, not an error.
func (s *Store) Read(key string) (string, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "cache: read %s", key)
	}
	return string(data), true, nil
}

// Write stores text under key, creating parent directories as needed.
func (s *Store) Write(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "cache: create dir for %s", key)
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return eris.Wrapf(err, "cache: write %s", key)
	}

	zap.L().Debug("cached dataset", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

// RemovePrefix deletes every entry under the given key prefix. A
// prefix with no entries is not an error.
func (s *Store) RemovePrefix(prefix string) error {
	path, err := s.path(prefix)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return eris.Wrapf(err, "cache: remove prefix %s", prefix)
	}
	return nil
}

// path maps a key to a file path under the base directory, rejecting
// keys that would escape it.
func (s *Store) path(key string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.dir)) {
		return "", eris.Errorf("cache: illegal key %q", key)
	}
	return path, nil
}
