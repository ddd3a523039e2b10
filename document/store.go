// Package document is the workspace's view of the file system: reading and
// writing document content, and enumerating the documents that exist under
// a root directory.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports that a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store abstracts document IO for the workspace core and the preview
// server. Implementations may block; callers treat Read and Write as
// opaque, fallible operations.
type Store interface {
	Read(path string) (string, error)
	Write(path, content string) error
	List() ([]string, error)
}

// skipDirs are directory names excluded from listing.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
}

// listExts are the document extensions surfaced by List.
var listExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// DiskStore serves documents from a directory tree on disk.
type DiskStore struct {
	root string
}

// NewDiskStore creates a store rooted at dir. The root is resolved to an
// absolute path so that document paths are stable identity keys.
func NewDiskStore(dir string) (*DiskStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", abs)
	}
	return &DiskStore{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *DiskStore) Root() string {
	return s.root
}

// Read loads a document's content.
func (s *DiskStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// Write persists a document's content.
func (s *DiskStore) Write(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

// List walks the root and returns the absolute paths of every document,
// sorted, skipping VCS and dependency directories and dotfiles.
func (s *DiskStore) List() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: skip, don't abort the walk
		}
		name := d.Name()
		if d.IsDir() {
			if skipDirs[name] || (strings.HasPrefix(name, ".") && path != s.root) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if listExts[strings.ToLower(filepath.Ext(name))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
