package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store is a flat-directory record store. Every regular file in the
// directory is assumed to be an encoded Entry filename; no other files may
// coexist there. Store never creates its directory; that is the embedding
// application's job.
type Store struct {
	dir string
}

// NewStore returns a handle on dir. The directory is not created or
// validated; IO errors surface on first use.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the directory the store operates on.
func (s *Store) Dir() string { return s.dir }

// List enumerates every filename in the directory. It fails only if the
// directory itself is inaccessible. Invalid names are not filtered here;
// callers do that via ParseEntry.
func (s *Store) List() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("cache: list %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		names = append(names, e.Name())
	}
	return names, nil
}

// Read returns the contents of one entry file.
func (s *Store) Read(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("cache: read %s: %w", name, err)
	}
	return b, nil
}

// Write creates or overwrites one entry file.
func (s *Store) Write(name string, data []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return fmt.Errorf("cache: write %s: %w", name, err)
	}
	return nil
}

// Remove deletes one entry file. Removing a missing file is an error;
// callers that tolerate "already gone" check with errors.Is(fs.ErrNotExist).
func (s *Store) Remove(name string) error {
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("cache: remove %s: %w", name, err)
	}
	return nil
}

// Size returns the size of one entry file in bytes.
func (s *Store) Size(name string) (int64, error) {
	fi, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return 0, fmt.Errorf("cache: stat %s: %w", name, err)
	}
	return fi.Size(), nil
}
