// Package workspace implements the tab and pane state machine at the heart
// of the editor: which documents are open, which pane and tab are active,
// how tabs move within and across split panes, how unsaved-change
// confirmation gates destructive operations, and how the layout is
// serialized across sessions. It is pure data management — no UI widget
// dependency — and all document IO goes through the Reader and Writer
// collaborator interfaces.
package workspace

import (
	"fmt"

	"github.com/google/uuid"
)

// Reader loads document content from the source of truth.
type Reader interface {
	Read(path string) (string, error)
}

// Writer persists document content.
type Writer interface {
	Write(path, content string) error
}

// Workspace owns the current Snapshot and funnels every mutation through
// its methods. Transitions are synchronous; the only suspension points are
// the collaborator Read and Write calls. Reads are split into Open (which
// registers the request) and FinishOpen (the completion), so a completion
// arriving after its target disappeared is applied as a no-op instead of
// resurrecting removed state.
type Workspace struct {
	snap    *Snapshot
	writer  Writer
	pending map[string]string // in-flight loads: path -> requesting pane id
	confirm *PendingClose
}

// New creates a workspace with a single empty pane.
func New(w Writer) *Workspace {
	p := &Pane{ID: uuid.NewString(), Size: 100}
	return &Workspace{
		snap: &Snapshot{
			Tabs:       map[string]*Tab{},
			Panes:      []*Pane{p},
			ActivePane: p.ID,
		},
		writer:  w,
		pending: map[string]string{},
	}
}

// Snapshot returns the current immutable state. Callers may hold it across
// transitions; it is never modified after being published.
func (ws *Workspace) Snapshot() *Snapshot {
	return ws.snap
}

// ActivePane returns the currently active pane.
func (ws *Workspace) ActivePane() *Pane {
	return ws.snap.Pane(ws.snap.ActivePane)
}

// ActiveTab returns the active tab of the active pane, or nil.
func (ws *Workspace) ActiveTab() *Tab {
	p := ws.ActivePane()
	if p == nil || p.Active == "" {
		return nil
	}
	return ws.snap.Tabs[p.Active]
}

// Tab returns the tab for path, or nil.
func (ws *Workspace) Tab(path string) *Tab {
	return ws.snap.Tabs[path]
}

// SetActivePane switches the active pane. Unknown ids are ignored.
func (ws *Workspace) SetActivePane(id string) {
	if ws.snap.Pane(id) == nil || ws.snap.ActivePane == id {
		return
	}
	next := ws.snap.clone()
	next.ActivePane = id
	ws.snap = next
}

// SetActiveTab focuses the given tab within its pane. The tab must be a
// member of the named pane or the call is ignored.
func (ws *Workspace) SetActiveTab(paneID, path string) {
	p := ws.snap.Pane(paneID)
	if p == nil || indexOf(p.Tabs, path) < 0 {
		return
	}
	next := ws.snap.clone()
	np := next.Pane(paneID)
	np.Active = path
	next.ActivePane = paneID
	ws.snap = next
}

// removeTabs drops the given paths from a pane, recomputing its active tab
// by the index-clamp rule, and deletes the tabs from the registry when
// destroy is set (close) but not when they merely migrate (split, move).
func (ws *Workspace) removeTabs(next *Snapshot, paneID string, paths []string, destroy bool) {
	p := next.Pane(paneID)
	if p == nil {
		return
	}
	// Only paths the pane actually owns are affected; a tab that migrated
	// elsewhere since the removal was planned is left alone.
	gone := make(map[string]bool, len(paths))
	for _, path := range paths {
		if indexOf(p.Tabs, path) >= 0 {
			gone[path] = true
		}
	}
	activeIdx := indexOf(p.Tabs, p.Active)
	kept := p.Tabs[:0:0]
	for _, t := range p.Tabs {
		if !gone[t] {
			kept = append(kept, t)
		}
	}
	p.Tabs = kept
	if p.Active != "" && gone[p.Active] {
		p.Active = activeAfterRemoval(kept, activeIdx)
	}
	if destroy {
		for path := range gone {
			delete(next.Tabs, path)
			delete(ws.pending, path)
		}
	}
}

// savePath writes one tab through the external writer. A clean or unknown
// tab is a no-op. On failure the tab stays dirty and the error propagates.
func (ws *Workspace) savePath(path string) error {
	tab := ws.snap.Tabs[path]
	if tab == nil || !tab.Dirty {
		return nil
	}
	if ws.writer == nil {
		return fmt.Errorf("save %s: no writer configured", path)
	}
	if err := ws.writer.Write(path, tab.Content); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	next := ws.snap.clone()
	t := next.cloneTab(path)
	t.Original = t.Content
	t.Dirty = false
	ws.snap = next
	return nil
}
