package workspace

// DragSession is the explicit record of an in-progress tab drag. It is
// captured when the drag starts and re-validated against the current
// snapshot when it drops, so a stale payload (the tab moved or closed
// mid-drag) is rejected instead of trusted.
type DragSession struct {
	TabPath     string
	SourcePane  string
	SourceIndex int
}

// valid reports whether the session still describes the current state.
func (d DragSession) valid(s *Snapshot) bool {
	p := s.Pane(d.SourcePane)
	if p == nil {
		return false
	}
	if d.SourceIndex < 0 || d.SourceIndex >= len(p.Tabs) {
		return false
	}
	return p.Tabs[d.SourceIndex] == d.TabPath
}

// ReorderTabs moves the tab at fromIndex to toIndex within one pane,
// leaving every other tab's relative order intact. Equal or out-of-range
// indices are ignored.
func (ws *Workspace) ReorderTabs(paneID string, fromIndex, toIndex int) {
	p := ws.snap.Pane(paneID)
	if p == nil || fromIndex == toIndex {
		return
	}
	if fromIndex < 0 || fromIndex >= len(p.Tabs) || toIndex < 0 || toIndex >= len(p.Tabs) {
		return
	}

	next := ws.snap.clone()
	np := next.Pane(paneID)
	moved := np.Tabs[fromIndex]
	np.Tabs = append(np.Tabs[:fromIndex], np.Tabs[fromIndex+1:]...)
	np.Tabs = append(np.Tabs[:toIndex], append([]string{moved}, np.Tabs[toIndex:]...)...)
	ws.snap = next
}

// MoveTabToPane drops a dragged tab into another pane: the tab leaves the
// source pane (its active pointer recomputed), is appended to the
// destination, and becomes the destination's active tab; the destination
// pane becomes active. Sessions that no longer match the current state,
// unknown destinations, and same-pane drops are rejected without mutating
// anything.
func (ws *Workspace) MoveTabToPane(sess DragSession, destPaneID string) {
	if !sess.valid(ws.snap) {
		return
	}
	if destPaneID == sess.SourcePane || ws.snap.Pane(destPaneID) == nil {
		return
	}

	next := ws.snap.clone()
	ws.removeTabs(next, sess.SourcePane, []string{sess.TabPath}, false)
	dst := next.Pane(destPaneID)
	dst.Tabs = append(dst.Tabs, sess.TabPath)
	dst.Active = sess.TabPath
	next.ActivePane = destPaneID
	ws.snap = next
}
