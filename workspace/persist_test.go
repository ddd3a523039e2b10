package workspace

import (
	"reflect"
	"testing"
)

func TestPersistRoundTrip(t *testing.T) {
	io := newFakeIO()
	ws := New(io)
	openTab(t, ws, io, "/a.md", "a")
	openTab(t, ws, io, "/b.md", "b")
	second := ws.Split(SplitHorizontal, "/b.md")

	layout := ws.PersistedState()

	restored := New(io)
	restored.RestoreState(layout, []string{"/a.md", "/b.md"}, io)

	snap := restored.Snapshot()
	if len(snap.Panes) != 2 {
		t.Fatalf("pane count = %d, want 2", len(snap.Panes))
	}
	if !reflect.DeepEqual(snap.Panes[0].Tabs, []string{"/a.md"}) {
		t.Errorf("pane one tabs = %v, want [/a.md]", snap.Panes[0].Tabs)
	}
	if !reflect.DeepEqual(snap.Panes[1].Tabs, []string{"/b.md"}) {
		t.Errorf("pane two tabs = %v, want [/b.md]", snap.Panes[1].Tabs)
	}
	if snap.Split != SplitHorizontal {
		t.Errorf("split = %q, want horizontal", snap.Split)
	}
	if snap.ActivePane != second {
		t.Errorf("active pane = %q, want %q", snap.ActivePane, second)
	}
	if tab := snap.Tabs["/a.md"]; tab == nil || tab.Content != "a" || tab.Dirty {
		t.Errorf("restored /a.md = %+v, want clean content reloaded from source", tab)
	}
}

func TestPersistNeverStoresContent(t *testing.T) {
	io := newFakeIO()
	ws := New(io)
	openTab(t, ws, io, "/a.md", "secret body")
	ws.UpdateContent("/a.md", "even more secret")

	layout := ws.PersistedState()
	if len(layout.Panes) != 1 {
		t.Fatalf("persisted panes = %d, want 1", len(layout.Panes))
	}
	if got := layout.Panes[0].TabPaths; !reflect.DeepEqual(got, []string{"/a.md"}) {
		t.Errorf("tab paths = %v, want [/a.md]", got)
	}
}

func TestRestoreDropsMissingAndUnreadablePaths(t *testing.T) {
	io := newFakeIO()
	io.files["/keep.md"] = "keep"
	io.files["/bad.md"] = "unreadable"
	io.failReads["/bad.md"] = true

	ws := New(io)
	ws.RestoreState(Layout{
		Panes: []PersistedPane{{
			ID:            "p1",
			TabPaths:      []string{"/keep.md", "/gone.md", "/bad.md"},
			ActiveTabPath: "/gone.md",
			Size:          100,
		}},
		ActivePaneID: "p1",
	}, []string{"/keep.md", "/bad.md"}, io)

	p := ws.Snapshot().Panes[0]
	if !reflect.DeepEqual(p.Tabs, []string{"/keep.md"}) {
		t.Errorf("tabs = %v, want [/keep.md]", p.Tabs)
	}
	// Persisted active didn't survive: fall back to the first retained tab.
	if p.Active != "/keep.md" {
		t.Errorf("active = %q, want /keep.md", p.Active)
	}
}

func TestRestoreNeverYieldsZeroPanes(t *testing.T) {
	io := newFakeIO()
	ws := New(io)

	ws.RestoreState(Layout{}, nil, io)

	snap := ws.Snapshot()
	if len(snap.Panes) != 1 {
		t.Fatalf("pane count = %d, want 1", len(snap.Panes))
	}
	if snap.Panes[0].Size != 100 || snap.Split != SplitNone {
		t.Errorf("empty restore pane = %+v split = %q", snap.Panes[0], snap.Split)
	}
	if snap.ActivePane != snap.Panes[0].ID {
		t.Error("active pane should be the rebuilt pane")
	}
}

func TestRestoreDropsEmptySecondPane(t *testing.T) {
	io := newFakeIO()
	io.files["/a.md"] = "a"

	ws := New(io)
	ws.RestoreState(Layout{
		Panes: []PersistedPane{
			{ID: "p1", TabPaths: []string{"/a.md"}, ActiveTabPath: "/a.md", Size: 50},
			{ID: "p2", TabPaths: []string{"/vanished.md"}, Size: 50},
		},
		ActivePaneID:   "p2",
		SplitDirection: SplitVertical,
	}, []string{"/a.md"}, io)

	snap := ws.Snapshot()
	if len(snap.Panes) != 1 {
		t.Fatalf("pane count = %d, want 1 (second pane had no surviving tabs)", len(snap.Panes))
	}
	if snap.Split != SplitNone {
		t.Errorf("split = %q, want cleared below 2 panes", snap.Split)
	}
	if snap.Panes[0].Size != 100 {
		t.Errorf("size = %d, want 100", snap.Panes[0].Size)
	}
	// Persisted active pane no longer exists: fall back to the first.
	if snap.ActivePane != "p1" {
		t.Errorf("active pane = %q, want p1", snap.ActivePane)
	}
}

func TestRestoreKeepsFirstPaneEvenWhenEmpty(t *testing.T) {
	io := newFakeIO()
	io.files["/b.md"] = "b"

	ws := New(io)
	ws.RestoreState(Layout{
		Panes: []PersistedPane{
			{ID: "p1", TabPaths: []string{"/gone.md"}, Size: 50},
			{ID: "p2", TabPaths: []string{"/b.md"}, ActiveTabPath: "/b.md", Size: 50},
		},
		ActivePaneID:   "p1",
		SplitDirection: SplitHorizontal,
	}, []string{"/b.md"}, io)

	snap := ws.Snapshot()
	if len(snap.Panes) != 2 {
		t.Fatalf("pane count = %d, want 2 (first pane is always kept)", len(snap.Panes))
	}
	if len(snap.Panes[0].Tabs) != 0 || snap.Panes[0].Active != "" {
		t.Errorf("first pane = %+v, want kept but empty", snap.Panes[0])
	}
	if snap.Split != SplitHorizontal {
		t.Errorf("split = %q, want horizontal", snap.Split)
	}
}

func TestRestoreDeduplicatesPathAcrossPanes(t *testing.T) {
	io := newFakeIO()
	io.files["/a.md"] = "a"

	ws := New(io)
	ws.RestoreState(Layout{
		Panes: []PersistedPane{
			{ID: "p1", TabPaths: []string{"/a.md"}, ActiveTabPath: "/a.md", Size: 50},
			{ID: "p2", TabPaths: []string{"/a.md"}, Size: 50},
		},
		ActivePaneID:   "p1",
		SplitDirection: SplitVertical,
	}, []string{"/a.md"}, io)

	snap := ws.Snapshot()
	owners := 0
	for _, p := range snap.Panes {
		if indexOf(p.Tabs, "/a.md") >= 0 {
			owners++
		}
	}
	if owners != 1 {
		t.Errorf("/a.md owned by %d panes, want exactly 1", owners)
	}
}
