package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Storage persists files under a base directory on an afero filesystem.
// Production wiring passes afero.NewOsFs(); tests run on a memory fs.
type Storage struct {
	fs      afero.Fs
	baseDir string
}

// New ensures the base directory exists and returns a handle.
func New(fs afero.Fs, baseDir string) (*Storage, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if baseDir == "" {
		baseDir = "."
	}
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create base directory: %w", err)
	}
	return &Storage{fs: fs, baseDir: baseDir}, nil
}

// Fs exposes the underlying filesystem.
func (s *Storage) Fs() afero.Fs {
	return s.fs
}

// Path resolves a name relative to the base directory.
func (s *Storage) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// EnsureDir creates a directory (and parents) under the base dir.
func (s *Storage) EnsureDir(name string) error {
	if err := s.fs.MkdirAll(s.Path(name), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", name, err)
	}
	return nil
}

// WriteFile writes the given bytes, creating or truncating the target.
func (s *Storage) WriteFile(name string, data []byte) error {
	path := s.Path(name)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare directory for %s: %w", name, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", name, err)
	}
	return nil
}

// ReadFile returns the contents of a stored file.
func (s *Storage) ReadFile(name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", name, err)
	}
	return data, nil
}

// FileExists reports whether a regular file exists at the given name.
func (s *Storage) FileExists(name string) bool {
	info, err := s.fs.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// IsDir reports whether the given name resolves to a directory.
func (s *Storage) IsDir(name string) bool {
	info, err := s.fs.Stat(s.Path(name))
	return err == nil && info.IsDir()
}

// ListDirs returns the names of immediate subdirectories of the base dir
// whose name carries the given prefix, sorted lexicographically.
func (s *Storage) ListDirs(prefix string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("list base directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DirSize recursively sums the sizes of every regular file under the name.
func (s *Storage) DirSize(name string) (int64, error) {
	var total int64
	err := afero.Walk(s.fs, s.Path(name), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("size directory %s: %w", name, err)
	}
	return total, nil
}

// RemoveTree deletes a directory tree file-by-file, removing each directory
// after its contents (depth-first, post-order).
func (s *Storage) RemoveTree(name string) error {
	return s.removeTree(s.Path(name))
}

func (s *Storage) removeTree(path string) error {
	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return fmt.Errorf("list directory %s: %w", path, err)
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			if err := s.removeTree(child); err != nil {
				return err
			}
			continue
		}
		if err := s.fs.Remove(child); err != nil {
			return fmt.Errorf("delete file %s: %w", child, err)
		}
	}
	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("delete directory %s: %w", path, err)
	}
	return nil
}
