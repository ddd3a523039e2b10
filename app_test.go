package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/odvcencio/quill/document"
)

func testModel(t *testing.T) (*model, string) {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("# "+name+"\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := document.NewDiskStore(root)
	if err != nil {
		t.Fatal(err)
	}
	m := newModel(store, defaultConfig(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
	m.width, m.height = 100, 30
	return m, root
}

// openInModel drives the full open cycle through Update, the way the
// program does it.
func openInModel(t *testing.T, m *model, path string) {
	t.Helper()
	cmd := m.openFile(path)
	if cmd == nil {
		t.Fatalf("openFile(%q) produced no load command", path)
	}
	if _, ok := cmd().(fileLoadedMsg); !ok {
		t.Fatal("load command did not produce a fileLoadedMsg")
	}
	m.Update(cmd())
}

func TestModelOpenFile(t *testing.T) {
	m, root := testModel(t)
	path := filepath.Join(root, "a.md")

	openInModel(t, m, path)

	tab := m.ws.Tab(path)
	if tab == nil {
		t.Fatal("tab not opened")
	}
	if tab.Content != "# a.md\n" {
		t.Errorf("content = %q", tab.Content)
	}
	// Re-opening issues no second load.
	if cmd := m.openFile(path); cmd != nil {
		t.Error("re-open produced a load command")
	}
}

func TestModelCloseDirtyShowsConfirm(t *testing.T) {
	m, root := testModel(t)
	path := filepath.Join(root, "a.md")
	openInModel(t, m, path)
	m.ws.UpdateContent(path, "edited")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlW})

	if m.ws.PendingClose() == nil {
		t.Fatal("expected a pending close confirmation")
	}

	// "s" saves and completes the close.
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if m.ws.PendingClose() != nil {
		t.Error("confirmation still pending after save")
	}
	if m.ws.Tab(path) != nil {
		t.Error("tab still open after save-and-close")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "edited" {
		t.Errorf("file content = %q, want edited", data)
	}
}

func TestModelSplitAndUnsplitKeys(t *testing.T) {
	m, root := testModel(t)
	openInModel(t, m, filepath.Join(root, "a.md"))
	openInModel(t, m, filepath.Join(root, "b.md"))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'\\'}, Alt: true})
	snap := m.ws.Snapshot()
	if len(snap.Panes) != 2 {
		t.Fatalf("pane count = %d, want 2 after split", len(snap.Panes))
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}, Alt: true})
	if n := len(m.ws.Snapshot().Panes); n != 1 {
		t.Errorf("pane count = %d, want 1 after unsplit", n)
	}
	if n := len(m.ws.Snapshot().Panes[0].Tabs); n != 2 {
		t.Errorf("merged tab count = %d, want 2", n)
	}
}

func TestModelQuitArmsOnUnsaved(t *testing.T) {
	m, root := testModel(t)
	path := filepath.Join(root, "a.md")
	openInModel(t, m, path)
	m.ws.UpdateContent(path, "edited")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd != nil {
		t.Fatal("first ctrl+q with unsaved tabs should not quit")
	}
	if !m.quitArmed {
		t.Error("quit not armed")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	if cmd == nil {
		t.Fatal("second ctrl+q should quit")
	}
}

func TestModelViewRenders(t *testing.T) {
	m, root := testModel(t)
	openInModel(t, m, filepath.Join(root, "a.md"))

	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}
}
