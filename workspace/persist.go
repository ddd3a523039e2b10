package workspace

import "github.com/google/uuid"

// PersistedPane is the path-only serialization of one pane. Content is
// never persisted; it is reloaded from the source of truth on restore.
type PersistedPane struct {
	ID            string   `json:"id"`
	TabPaths      []string `json:"tabPaths"`
	ActiveTabPath string   `json:"activeTabPath,omitempty"`
	Size          int      `json:"size"`
}

// Layout is the persisted shape of the whole workspace.
type Layout struct {
	Panes          []PersistedPane `json:"panes"`
	ActivePaneID   string          `json:"activePaneId"`
	SplitDirection SplitDirection  `json:"splitDirection,omitempty"`
}

// PersistedState serializes the current pane/tab layout.
func (ws *Workspace) PersistedState() Layout {
	s := ws.snap
	out := Layout{
		ActivePaneID:   s.ActivePane,
		SplitDirection: s.Split,
	}
	for _, p := range s.Panes {
		out.Panes = append(out.Panes, PersistedPane{
			ID:            p.ID,
			TabPaths:      append([]string(nil), p.Tabs...),
			ActiveTabPath: p.Active,
			Size:          p.Size,
		})
	}
	return out
}

// RestoreState rebuilds the workspace from a persisted layout, reconciled
// against the live document set. Paths missing from the set are silently
// dropped, as are paths whose reload fails — restore tolerates partial
// failure and never aborts wholesale. The first pane processed is always
// kept so the workspace never ends up with zero panes; later panes survive
// only with at least one valid tab. Active pointers fall back (first
// retained tab, first rebuilt pane) when the persisted ones did not
// survive, and the split direction is cleared unless two panes remain.
func (ws *Workspace) RestoreState(layout Layout, live []string, r Reader) {
	liveSet := make(map[string]bool, len(live))
	for _, p := range live {
		liveSet[p] = true
	}

	next := &Snapshot{Tabs: map[string]*Tab{}}
	seen := map[string]bool{}

	descs := layout.Panes
	if len(descs) > MaxPanes {
		descs = descs[:MaxPanes]
	}
	for i, pd := range descs {
		pane := &Pane{ID: pd.ID, Size: pd.Size}
		if pane.ID == "" {
			pane.ID = uuid.NewString()
		}
		for _, path := range pd.TabPaths {
			if !liveSet[path] || seen[path] {
				continue
			}
			content, err := r.Read(path)
			if err != nil {
				continue
			}
			seen[path] = true
			next.Tabs[path] = &Tab{
				Path:     path,
				Content:  content,
				Original: content,
				Mode:     ViewEdit,
			}
			pane.Tabs = append(pane.Tabs, path)
		}
		if len(pane.Tabs) == 0 && i > 0 {
			continue
		}
		if indexOf(pane.Tabs, pd.ActiveTabPath) >= 0 {
			pane.Active = pd.ActiveTabPath
		} else if len(pane.Tabs) > 0 {
			pane.Active = pane.Tabs[0]
		}
		next.Panes = append(next.Panes, pane)
	}

	if len(next.Panes) == 0 {
		next.Panes = []*Pane{{ID: uuid.NewString(), Size: 100}}
	}
	if len(next.Panes) == 1 {
		next.Panes[0].Size = 100
		next.Split = SplitNone
	} else {
		next.Split = layout.SplitDirection
		if next.Split == SplitNone {
			next.Split = SplitVertical
		}
		for _, p := range next.Panes {
			if p.Size == 0 {
				p.Size = 50
			}
		}
	}

	next.ActivePane = next.Panes[0].ID
	for _, p := range next.Panes {
		if p.ID == layout.ActivePaneID {
			next.ActivePane = p.ID
			break
		}
	}

	ws.snap = next
	ws.pending = map[string]string{}
	ws.confirm = nil
}
