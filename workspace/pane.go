package workspace

import "github.com/google/uuid"

// MaxPanes is the pane-count ceiling; the layout is a 1-or-2-way split.
const MaxPanes = 2

// Split creates a second pane and returns its id synchronously, so callers
// never need to poll state to discover it. At the pane ceiling it returns
// "" and changes nothing. When tabPath names a tab owned by the active
// pane, that tab migrates to the new pane as its sole, active tab and the
// new pane becomes active; otherwise the new pane starts empty and the
// active pane is unchanged. Both panes get size 50 and the direction flag
// is set.
func (ws *Workspace) Split(dir SplitDirection, tabPath string) string {
	if len(ws.snap.Panes) >= MaxPanes {
		return ""
	}
	if dir != SplitHorizontal && dir != SplitVertical {
		return ""
	}

	next := ws.snap.clone()
	src := next.Pane(next.ActivePane)
	fresh := &Pane{ID: uuid.NewString(), Size: 50}

	if tabPath != "" && src != nil && indexOf(src.Tabs, tabPath) >= 0 {
		ws.removeTabs(next, src.ID, []string{tabPath}, false)
		fresh.Tabs = []string{tabPath}
		fresh.Active = tabPath
		next.ActivePane = fresh.ID
	}

	for _, p := range next.Panes {
		p.Size = 50
	}
	next.Panes = append(next.Panes, fresh)
	next.Split = dir
	ws.snap = next
	return fresh.ID
}

// Unsplit merges all panes back into one, concatenating their tab lists in
// pane order. The first non-empty active pointer among the merged panes
// wins. Size resets to 100 and the direction flag clears.
func (ws *Workspace) Unsplit() {
	if len(ws.snap.Panes) <= 1 {
		return
	}

	next := ws.snap.clone()
	merged := next.Panes[0]
	for _, p := range next.Panes[1:] {
		merged.Tabs = append(merged.Tabs, p.Tabs...)
		if merged.Active == "" {
			merged.Active = p.Active
		}
	}
	merged.Size = 100
	next.Panes = []*Pane{merged}
	next.ActivePane = merged.ID
	next.Split = SplitNone
	ws.snap = next
}

// ResizePanes assigns new size weights. The partition must match the pane
// count exactly; the core does not renormalize — supplying weights that
// sum to 100 is the caller's responsibility.
func (ws *Workspace) ResizePanes(sizes []int) {
	if len(sizes) != len(ws.snap.Panes) {
		return
	}
	next := ws.snap.clone()
	for i, p := range next.Panes {
		p.Size = sizes[i]
	}
	ws.snap = next
}
