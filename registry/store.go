package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is the durable home of the user sequence. Load returns the full
// sequence in insertion order; Save replaces it as one unit.
type Store interface {
	Load(ctx context.Context) ([]User, error)
	Save(ctx context.Context, users []User) error
}

// FileStore keeps the user sequence as an indented JSON array in one file.
type FileStore struct {
	path string
	perm fs.FileMode
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, perm: 0o644}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the whole file. A missing or malformed file is an
// error; an empty array is a valid, empty store.
func (s *FileStore) Load(_ context.Context) ([]User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("registry: reading %s: %w", s.path, err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("registry: decoding %s: %w", s.path, err)
	}
	return users, nil
}

// Save encodes users and replaces the file atomically: the data goes to a
// temporary file in the same directory which is synced and then renamed over
// the store. On failure the previous file is left as it was. A symlinked path
// is followed so the link survives, and an existing file keeps its mode.
func (s *FileStore) Save(_ context.Context, users []User) error {
	if users == nil {
		users = []User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("registry: encoding users: %w", err)
	}
	data = append(data, '\n')

	target, perm, err := s.target()
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("registry: creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("registry: writing %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("registry: syncing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("registry: closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("registry: chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("registry: replacing %s: %w", target, err)
	}
	committed = true
	return nil
}

// target resolves the file Save replaces and the mode it should get. A path
// that does not exist yet is written as is with the default mode.
func (s *FileStore) target() (string, fs.FileMode, error) {
	path, err := filepath.EvalSymlinks(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.path, s.perm, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("registry: resolving %s: %w", s.path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("registry: checking %s: %w", path, err)
	}
	return path, info.Mode().Perm(), nil
}

// Init creates an empty store if the file does not exist yet. An existing
// file is left untouched.
func (s *FileStore) Init(ctx context.Context) error {
	_, err := os.Stat(s.path)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("registry: checking %s: %w", s.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("registry: creating directory for %s: %w", s.path, err)
	}
	return s.Save(ctx, nil)
}
