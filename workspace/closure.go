package workspace

// PendingClose is the AwaitingConfirmation state of the close flow: a
// planned removal blocked on the user deciding what happens to its dirty
// tabs. Remove lists every tab the operation will take out; Dirty is the
// subset that needs confirmation and is what a dialog should show.
type PendingClose struct {
	PaneID string
	Remove []string
	Dirty  []string
}

// PendingClose returns the close awaiting confirmation, or nil when idle.
func (ws *Workspace) PendingClose() *PendingClose {
	return ws.confirm
}

// CloseTab closes one tab. A clean tab is removed immediately; a dirty one
// parks the operation behind a confirmation.
func (ws *Workspace) CloseTab(paneID, path string) {
	p := ws.snap.Pane(paneID)
	if p == nil || indexOf(p.Tabs, path) < 0 {
		return
	}
	ws.requestClose(paneID, []string{path})
}

// CloseActiveTab closes the active tab of the active pane.
func (ws *Workspace) CloseActiveTab() {
	p := ws.ActivePane()
	if p == nil || p.Active == "" {
		return
	}
	ws.CloseTab(p.ID, p.Active)
}

// CloseOtherTabs closes every tab in the pane except the one named.
func (ws *Workspace) CloseOtherTabs(paneID, keep string) {
	p := ws.snap.Pane(paneID)
	if p == nil {
		return
	}
	var targets []string
	for _, t := range p.Tabs {
		if t != keep {
			targets = append(targets, t)
		}
	}
	ws.requestClose(paneID, targets)
}

// CloseAllTabs closes every tab in the pane.
func (ws *Workspace) CloseAllTabs(paneID string) {
	p := ws.snap.Pane(paneID)
	if p == nil {
		return
	}
	ws.requestClose(paneID, append([]string(nil), p.Tabs...))
}

// CloseSavedTabs removes the pane's clean tabs. Dirty tabs are preserved
// and no confirmation is ever shown.
func (ws *Workspace) CloseSavedTabs(paneID string) {
	p := ws.snap.Pane(paneID)
	if p == nil {
		return
	}
	var clean []string
	for _, path := range p.Tabs {
		if t := ws.snap.Tabs[path]; t != nil && !t.Dirty {
			clean = append(clean, path)
		}
	}
	if len(clean) == 0 {
		return
	}
	next := ws.snap.clone()
	ws.removeTabs(next, paneID, clean, true)
	ws.snap = next
}

// requestClose removes the targets immediately when none are dirty, and
// otherwise enters AwaitingConfirmation with a single dialog covering the
// whole dirty subset. A close requested while another is already awaiting
// confirmation is ignored.
func (ws *Workspace) requestClose(paneID string, targets []string) {
	if ws.confirm != nil || len(targets) == 0 {
		return
	}
	var dirty []string
	for _, path := range targets {
		if t := ws.snap.Tabs[path]; t != nil && t.Dirty {
			dirty = append(dirty, path)
		}
	}
	if len(dirty) == 0 {
		next := ws.snap.clone()
		ws.removeTabs(next, paneID, targets, true)
		ws.snap = next
		return
	}
	ws.confirm = &PendingClose{PaneID: paneID, Remove: targets, Dirty: dirty}
}

// ConfirmDiscard resolves the pending close by abandoning unsaved changes:
// the originally planned removal proceeds unconditionally.
func (ws *Workspace) ConfirmDiscard() {
	pc := ws.confirm
	if pc == nil {
		return
	}
	ws.confirm = nil
	next := ws.snap.clone()
	ws.removeTabs(next, pc.PaneID, pc.Remove, true)
	ws.snap = next
}

// ConfirmSave resolves the pending close by saving every dirty tab first.
// If any save fails the whole close is aborted and nothing is removed;
// tabs that saved before the failure stay open, now clean. Partial success
// is accepted rather than rolled back — undoing it would rewrite files on
// disk with stale content.
func (ws *Workspace) ConfirmSave() error {
	pc := ws.confirm
	if pc == nil {
		return nil
	}
	ws.confirm = nil
	for _, path := range pc.Dirty {
		if err := ws.savePath(path); err != nil {
			return err
		}
	}
	next := ws.snap.clone()
	ws.removeTabs(next, pc.PaneID, pc.Remove, true)
	ws.snap = next
	return nil
}

// CancelClose abandons the pending close; nothing is removed or saved.
func (ws *Workspace) CancelClose() {
	ws.confirm = nil
}
