package workspace

import "testing"

// checkInvariants asserts the structural rules that must hold after every
// transition: each tab owned by exactly one pane, 1 or 2 panes, active
// tabs are members of their pane, sizes sum to 100, and the split
// direction is set exactly when two panes exist.
func checkInvariants(t *testing.T, ws *Workspace) {
	t.Helper()
	s := ws.Snapshot()

	if n := len(s.Panes); n < 1 || n > MaxPanes {
		t.Fatalf("pane count = %d, want 1..%d", n, MaxPanes)
	}

	owners := map[string]int{}
	sizes := 0
	for _, p := range s.Panes {
		sizes += p.Size
		for _, path := range p.Tabs {
			owners[path]++
			if s.Tabs[path] == nil {
				t.Fatalf("pane %s lists %s but the registry has no such tab", p.ID, path)
			}
		}
		if p.Active != "" && indexOf(p.Tabs, p.Active) < 0 {
			t.Fatalf("pane %s active %q is not in its own list %v", p.ID, p.Active, p.Tabs)
		}
	}
	for path, n := range owners {
		if n != 1 {
			t.Fatalf("tab %s owned by %d panes", path, n)
		}
	}
	for path := range s.Tabs {
		if owners[path] != 1 {
			t.Fatalf("registry tab %s not owned by any pane", path)
		}
	}
	if sizes != 100 {
		t.Fatalf("pane sizes sum to %d, want 100", sizes)
	}
	if (s.Split != SplitNone) != (len(s.Panes) == 2) {
		t.Fatalf("split = %q with %d panes", s.Split, len(s.Panes))
	}
}

func TestInvariantsHoldAcrossTransitions(t *testing.T) {
	io := newFakeIO()
	ws := New(io)
	checkInvariants(t, ws)

	step := func(op func()) {
		op()
		checkInvariants(t, ws)
	}

	step(func() { openTab(t, ws, io, "/a.md", "a") })
	step(func() { openTab(t, ws, io, "/b.md", "b") })
	step(func() { openTab(t, ws, io, "/c.md", "c") })
	step(func() { ws.ReorderTabs(ws.ActivePane().ID, 0, 2) })

	var second string
	step(func() { second = ws.Split(SplitVertical, "/c.md") })
	step(func() { ws.ResizePanes([]int{70, 30}) })
	step(func() {
		src := ws.Snapshot().PaneOf("/b.md")
		ws.MoveTabToPane(DragSession{
			TabPath:     "/b.md",
			SourcePane:  src.ID,
			SourceIndex: indexOf(src.Tabs, "/b.md"),
		}, second)
	})
	step(func() { ws.UpdateContent("/b.md", "b2") })
	step(func() { ws.CloseSavedTabs(second) })
	step(func() { ws.CloseAllTabs(second) })
	step(func() { ws.ConfirmDiscard() })
	step(func() { ws.Unsplit() })
	step(func() { ws.CloseTab(ws.ActivePane().ID, "/a.md") })
}
