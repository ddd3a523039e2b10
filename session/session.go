// Package session stores the persisted pane/tab layout between runs. Only
// paths and pointers are written to disk; document content always comes
// back from the document store on restore.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/odvcencio/quill/workspace"
)

// FileName is the layout file kept under the state directory.
const FileName = "session.json"

// StateDir is the per-root directory quill keeps its state in.
const StateDir = ".quill"

// Path returns the session file location for a workspace root.
func Path(root string) string {
	return filepath.Join(root, StateDir, FileName)
}

// Load reads the persisted layout for a root. A missing file is a fresh
// start, not an error; a corrupt file is reported so the caller can decide
// whether to discard it.
func Load(root string) (workspace.Layout, bool, error) {
	data, err := os.ReadFile(Path(root))
	if errors.Is(err, fs.ErrNotExist) {
		return workspace.Layout{}, false, nil
	}
	if err != nil {
		return workspace.Layout{}, false, fmt.Errorf("read session: %w", err)
	}
	var layout workspace.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return workspace.Layout{}, false, fmt.Errorf("parse session: %w", err)
	}
	return layout, true, nil
}

// Save writes the layout for a root, creating the state directory on
// first use.
func Save(root string, layout workspace.Layout) error {
	dir := filepath.Join(root, StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
