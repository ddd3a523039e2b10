package workspace

import "fmt"

// Open requests that the document at path be shown. If a tab for the path
// already exists anywhere, its owning pane becomes active and the tab is
// focused — no load is issued, even when a prior load for the same path
// has not settled yet. Otherwise the load is registered against the
// active pane and Open reports true: the caller must perform the read and
// deliver the result through FinishOpen.
func (ws *Workspace) Open(path string) (needLoad bool) {
	if p := ws.snap.PaneOf(path); p != nil {
		ws.SetActiveTab(p.ID, path)
		return false
	}
	if _, inFlight := ws.pending[path]; inFlight {
		return false
	}
	ws.pending[path] = ws.snap.ActivePane
	return true
}

// FinishOpen applies a load completion. The completion re-validates the
// current state: if the request was superseded (no longer pending, tab
// created elsewhere, requesting pane gone), it is dropped. A failed read
// still opens the tab, with placeholder content marking the error, so the
// user keeps the tab for navigation instead of losing the request.
func (ws *Workspace) FinishOpen(path, content string, readErr error) {
	paneID, ok := ws.pending[path]
	if !ok {
		return
	}
	delete(ws.pending, path)
	if _, exists := ws.snap.Tabs[path]; exists {
		return
	}
	if ws.snap.Pane(paneID) == nil {
		return
	}

	failed := false
	if readErr != nil {
		content = fmt.Sprintf("⚠ could not read %s\n\n%v\n", path, readErr)
		failed = true
	}

	next := ws.snap.clone()
	next.Tabs[path] = &Tab{
		Path:       path,
		Content:    content,
		Original:   content,
		Mode:       ViewEdit,
		LoadFailed: failed,
	}
	p := next.Pane(paneID)
	p.Tabs = append(p.Tabs, path)
	p.Active = path
	ws.snap = next
}

// Loading reports whether a read for path is still in flight.
func (ws *Workspace) Loading(path string) bool {
	_, ok := ws.pending[path]
	return ok
}

// UpdateContent replaces a tab's content and recomputes its dirty flag by
// comparing against the last-saved snapshot. No other state is touched.
func (ws *Workspace) UpdateContent(path, content string) {
	tab := ws.snap.Tabs[path]
	if tab == nil || tab.Content == content {
		return
	}
	next := ws.snap.clone()
	t := next.cloneTab(path)
	t.Content = content
	t.Dirty = content != t.Original
	ws.snap = next
}

// Save writes the tab's content through the external writer. Saving a
// clean tab is a no-op. On failure the tab is left dirty and the error is
// returned to the caller, never swallowed.
func (ws *Workspace) Save(path string) error {
	return ws.savePath(path)
}

// SetViewMode tags the tab with a display mode.
func (ws *Workspace) SetViewMode(path string, mode ViewMode) {
	tab := ws.snap.Tabs[path]
	if tab == nil || tab.Mode == mode {
		return
	}
	next := ws.snap.clone()
	next.cloneTab(path).Mode = mode
	ws.snap = next
}

// SetCursor records the caret position for a tab. Runtime-only state; it
// is not persisted with the layout.
func (ws *Workspace) SetCursor(path string, cur Cursor) {
	tab := ws.snap.Tabs[path]
	if tab == nil || tab.Cursor == cur {
		return
	}
	next := ws.snap.clone()
	next.cloneTab(path).Cursor = cur
	ws.snap = next
}

// NextTab cycles the active pane's focus forward.
func (ws *Workspace) NextTab() {
	ws.cycleTab(1)
}

// PreviousTab cycles the active pane's focus backward.
func (ws *Workspace) PreviousTab() {
	ws.cycleTab(-1)
}

func (ws *Workspace) cycleTab(step int) {
	p := ws.ActivePane()
	if p == nil || len(p.Tabs) < 2 {
		return
	}
	idx := indexOf(p.Tabs, p.Active)
	if idx < 0 {
		idx = 0
	}
	idx = (idx + step + len(p.Tabs)) % len(p.Tabs)
	ws.SetActiveTab(p.ID, p.Tabs[idx])
}

// UnsavedTabs returns the paths of all dirty tabs, in pane order.
func (ws *Workspace) UnsavedTabs() []string {
	var out []string
	for _, p := range ws.snap.Panes {
		for _, path := range p.Tabs {
			if t := ws.snap.Tabs[path]; t != nil && t.Dirty {
				out = append(out, path)
			}
		}
	}
	return out
}
