package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultCacheDir is the cache root used when none is configured
const DefaultCacheDir = "~/.cache/covid-widget"

// Storage handles the cache directory and file replacement
type Storage struct {
	root string
}

// New creates a new Storage instance, creating the cache directory if needed
func New(root string) (*Storage, error) {
	root, err := ExpandHome(root)
	if err != nil {
		return nil, err
	}

	if err := EnsureDir(root); err != nil {
		return nil, err
	}

	return &Storage{
		root: root,
	}, nil
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// EnsureDir creates dir and any missing parents
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// Root returns the cache directory
func (s *Storage) Root() string {
	return s.root
}

// Clear removes the cache directory with everything in it and recreates it empty
func (s *Storage) Clear() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("removing cache directory: %w", err)
	}
	return EnsureDir(s.root)
}

// WriteFile atomically replaces path with data. The data is written to a
// temporary file in the same directory and renamed over path.
func (s *Storage) WriteFile(path string, data []byte, perm os.FileMode) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
