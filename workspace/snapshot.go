package workspace

// SplitDirection describes how two panes divide the window. It is empty
// whenever a single pane is open.
type SplitDirection string

const (
	SplitNone       SplitDirection = ""
	SplitHorizontal SplitDirection = "horizontal"
	SplitVertical   SplitDirection = "vertical"
)

// ViewMode is the per-tab display mode tag.
type ViewMode string

const (
	ViewEdit    ViewMode = "edit"
	ViewPreview ViewMode = "preview"
)

// Cursor is an optional caret position within a tab's content.
type Cursor struct {
	Line int
	Col  int
}

// Tab is one open document, keyed by its absolute path. Content and
// Original are full snapshots of the document text; Dirty is derived by
// value comparison and never set independently.
type Tab struct {
	Path       string
	Content    string
	Original   string
	Dirty      bool
	Mode       ViewMode
	Cursor     Cursor
	LoadFailed bool // Content is a placeholder because the read failed
}

// Pane owns an ordered list of tab paths and an active-tab pointer.
// Size is a percentage weight; pane sizes sum to 100.
type Pane struct {
	ID     string
	Tabs   []string
	Active string // "" when the pane has no tabs
	Size   int
}

// Snapshot is the complete observable state of the workspace. Mutators
// never modify a snapshot in place: they build a new one and swap it, so
// a caller holding a snapshot never sees a partial update.
type Snapshot struct {
	Tabs       map[string]*Tab
	Panes      []*Pane
	ActivePane string
	Split      SplitDirection
}

// clone copies the snapshot's structure. Pane structs and tab-path slices
// are duplicated; Tab pointers are shared until a tab itself is mutated
// (see cloneTab).
func (s *Snapshot) clone() *Snapshot {
	tabs := make(map[string]*Tab, len(s.Tabs))
	for k, v := range s.Tabs {
		tabs[k] = v
	}
	panes := make([]*Pane, len(s.Panes))
	for i, p := range s.Panes {
		cp := *p
		cp.Tabs = append([]string(nil), p.Tabs...)
		panes[i] = &cp
	}
	return &Snapshot{
		Tabs:       tabs,
		Panes:      panes,
		ActivePane: s.ActivePane,
		Split:      s.Split,
	}
}

// cloneTab replaces the map entry for path with a copy and returns it.
func (s *Snapshot) cloneTab(path string) *Tab {
	old, ok := s.Tabs[path]
	if !ok {
		return nil
	}
	cp := *old
	s.Tabs[path] = &cp
	return &cp
}

// Pane returns the pane with the given id, or nil.
func (s *Snapshot) Pane(id string) *Pane {
	for _, p := range s.Panes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PaneOf returns the pane owning the given tab path, or nil. A tab path
// belongs to at most one pane at any instant.
func (s *Snapshot) PaneOf(path string) *Pane {
	for _, p := range s.Panes {
		for _, t := range p.Tabs {
			if t == path {
				return p
			}
		}
	}
	return nil
}

// indexOf returns the position of path in tabs, or -1.
func indexOf(tabs []string, path string) int {
	for i, t := range tabs {
		if t == path {
			return i
		}
	}
	return -1
}

// activeAfterRemoval picks the tab left active after removing entries
// from a pane: the one now occupying the removed active tab's original
// index, clamped to the new last tab, or "" if the pane emptied.
func activeAfterRemoval(remaining []string, removedIdx int) string {
	if len(remaining) == 0 {
		return ""
	}
	if removedIdx >= len(remaining) {
		removedIdx = len(remaining) - 1
	}
	if removedIdx < 0 {
		removedIdx = 0
	}
	return remaining[removedIdx]
}
