package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/odvcencio/quill/document"
	"github.com/odvcencio/quill/session"
	"github.com/odvcencio/quill/web"
	"github.com/odvcencio/quill/workspace"
)

var (
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	statusErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("236")).Padding(0, 1)
	paneStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	activePaneStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("39"))
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// fileLoadedMsg delivers an asynchronous document read back to the model.
type fileLoadedMsg struct {
	path    string
	content string
	err     error
}

type keyMap struct {
	Quit       key.Binding
	Finder     key.Binding
	Save       key.Binding
	Close      key.Binding
	CloseOther key.Binding
	CloseAll   key.Binding
	CloseSaved key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	TabLeft    key.Binding
	TabRight   key.Binding
	ViewMode   key.Binding
	SplitV     key.Binding
	SplitH     key.Binding
	Unsplit    key.Binding
	FocusPane  key.Binding
	MoveTab    key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Help       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+q")),
		Finder:     key.NewBinding(key.WithKeys("ctrl+p")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s")),
		Close:      key.NewBinding(key.WithKeys("ctrl+w")),
		CloseOther: key.NewBinding(key.WithKeys("alt+o")),
		CloseAll:   key.NewBinding(key.WithKeys("alt+a")),
		CloseSaved: key.NewBinding(key.WithKeys("alt+s")),
		NextTab:    key.NewBinding(key.WithKeys("tab")),
		PrevTab:    key.NewBinding(key.WithKeys("shift+tab")),
		TabLeft:    key.NewBinding(key.WithKeys("alt+left")),
		TabRight:   key.NewBinding(key.WithKeys("alt+right")),
		ViewMode:   key.NewBinding(key.WithKeys("alt+v")),
		SplitV:     key.NewBinding(key.WithKeys("alt+\\")),
		SplitH:     key.NewBinding(key.WithKeys("alt+-")),
		Unsplit:    key.NewBinding(key.WithKeys("alt+u")),
		FocusPane:  key.NewBinding(key.WithKeys("alt+tab")),
		MoveTab:    key.NewBinding(key.WithKeys("alt+m")),
		Grow:       key.NewBinding(key.WithKeys("alt+=")),
		Shrink:     key.NewBinding(key.WithKeys("alt+'")),
		Help:       key.NewBinding(key.WithKeys("?")),
	}
}

// previewState bridges the single-threaded workspace to the preview
// server's goroutines: the model publishes each new immutable snapshot
// here, and the server only ever reads published snapshots.
type previewState struct {
	snap  atomic.Pointer[workspace.Snapshot]
	store *document.DiskStore
}

func (p *previewState) publish(s *workspace.Snapshot) {
	p.snap.Store(s)
}

func (p *previewState) ActiveDocument() (string, string, bool) {
	s := p.snap.Load()
	if s == nil {
		return "", "", false
	}
	pane := s.Pane(s.ActivePane)
	if pane == nil || pane.Active == "" {
		return "", "", false
	}
	tab := s.Tabs[pane.Active]
	if tab == nil {
		return "", "", false
	}
	return tab.Path, tab.Content, true
}

func (p *previewState) ReadDocument(path string) (string, error) {
	return p.store.Read(path)
}

func (p *previewState) ListDocuments() ([]string, error) {
	return p.store.List()
}

type model struct {
	ws      *workspace.Workspace
	store   *document.DiskStore
	cfg     Config
	keys    keyMap
	log     *slog.Logger
	preview *web.Server
	pubsub  *previewState // nil when the preview server is disabled

	width  int
	height int

	status    string
	statusErr bool
	finder    *fileFinder
	showHelp  bool
	quitArmed bool
}

func newModel(store *document.DiskStore, cfg Config, log *slog.Logger) *model {
	m := &model{
		ws:    workspace.New(store),
		store: store,
		cfg:   cfg,
		keys:  defaultKeyMap(),
		log:   log,
	}
	if cfg.RestoreSession {
		layout, found, err := session.Load(store.Root())
		if err != nil {
			log.Warn("session not restored", "err", err)
		} else if found {
			live, err := store.List()
			if err != nil {
				log.Warn("document listing failed", "err", err)
			}
			m.ws.RestoreState(layout, live, store)
		}
	}
	return m
}

// attachPreview wires the browser preview server to the model.
func (m *model) attachPreview(srv *web.Server, state *previewState) {
	m.preview = srv
	m.pubsub = state
	m.syncPreview()
}

// syncPreview publishes the current snapshot and pokes connected clients.
func (m *model) syncPreview() {
	if m.pubsub == nil {
		return
	}
	m.pubsub.publish(m.ws.Snapshot())
	m.preview.Broadcast("changed", nil)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *model) setError(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = true
}

// openFile starts (or short-circuits) an open for path. The read runs as a
// bubbletea command and lands back in Update as a fileLoadedMsg.
func (m *model) openFile(path string) tea.Cmd {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if !m.ws.Open(abs) {
		return nil
	}
	store := m.store
	return func() tea.Msg {
		content, err := store.Read(abs)
		return fileLoadedMsg{path: abs, content: content, err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fileLoadedMsg:
		m.ws.FinishOpen(msg.path, msg.content, msg.err)
		if msg.err != nil {
			m.log.Warn("document load failed", "path", msg.path, "err", msg.err)
			m.setError("could not read %s", filepath.Base(msg.path))
		}
		if m.cfg.DefaultViewMode == string(workspace.ViewPreview) {
			m.ws.SetViewMode(msg.path, workspace.ViewPreview)
		}
		m.syncPreview()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	if m.finder != nil {
		return m.handleFinderKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if pc := m.ws.PendingClose(); pc != nil {
		return m.handleConfirmKey(msg, pc)
	}
	return m.handleGlobalKey(msg)
}

func (m *model) handleFinderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.finder = nil
	case tea.KeyEnter:
		path := m.finder.Selected()
		m.finder = nil
		if path != "" {
			return m, m.openFile(path)
		}
	case tea.KeyUp:
		m.finder.MoveSelection(-1)
	case tea.KeyDown:
		m.finder.MoveSelection(1)
	case tea.KeyBackspace:
		m.finder.Backspace()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.finder.Type(r)
		}
	}
	return m, nil
}

func (m *model) handleConfirmKey(msg tea.KeyMsg, pc *workspace.PendingClose) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if err := m.ws.ConfirmSave(); err != nil {
			m.log.Warn("close aborted", "err", err)
			m.setError("close aborted: %v", err)
		} else {
			m.setStatus("saved and closed %d tab(s)", len(pc.Remove))
		}
	case "d":
		m.ws.ConfirmDiscard()
		m.setStatus("closed %d tab(s)", len(pc.Remove))
	case "esc", "c":
		m.ws.CancelClose()
		m.setStatus("close cancelled")
	}
	m.syncPreview()
	return m, nil
}

func (m *model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		if unsaved := m.ws.UnsavedTabs(); len(unsaved) > 0 && !m.quitArmed {
			m.quitArmed = true
			m.setError("%d unsaved tab(s); ctrl+q again to quit anyway", len(unsaved))
			return m, nil
		}
		if err := session.Save(m.store.Root(), m.ws.PersistedState()); err != nil {
			m.log.Warn("session not saved", "err", err)
		}
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.showHelp = true

	case key.Matches(msg, keys.Finder):
		files, err := m.store.List()
		if err != nil {
			m.setError("listing failed: %v", err)
			return m, nil
		}
		m.finder = newFileFinder(files, m.store.Root(), m.cfg.FinderLimit)

	case key.Matches(msg, keys.Save):
		if tab := m.ws.ActiveTab(); tab != nil {
			if err := m.ws.Save(tab.Path); err != nil {
				m.setError("%v", err)
			} else {
				m.setStatus("saved %s", filepath.Base(tab.Path))
			}
		}

	case key.Matches(msg, keys.Close):
		m.ws.CloseActiveTab()

	case key.Matches(msg, keys.CloseOther):
		if p := m.ws.ActivePane(); p != nil && p.Active != "" {
			m.ws.CloseOtherTabs(p.ID, p.Active)
		}

	case key.Matches(msg, keys.CloseAll):
		if p := m.ws.ActivePane(); p != nil {
			m.ws.CloseAllTabs(p.ID)
		}

	case key.Matches(msg, keys.CloseSaved):
		if p := m.ws.ActivePane(); p != nil {
			m.ws.CloseSavedTabs(p.ID)
		}

	case key.Matches(msg, keys.NextTab):
		m.ws.NextTab()

	case key.Matches(msg, keys.PrevTab):
		m.ws.PreviousTab()

	case key.Matches(msg, keys.TabLeft):
		m.reorderActive(-1)

	case key.Matches(msg, keys.TabRight):
		m.reorderActive(1)

	case key.Matches(msg, keys.ViewMode):
		if tab := m.ws.ActiveTab(); tab != nil {
			mode := workspace.ViewPreview
			if tab.Mode == workspace.ViewPreview {
				mode = workspace.ViewEdit
			}
			m.ws.SetViewMode(tab.Path, mode)
		}

	case key.Matches(msg, keys.SplitV), key.Matches(msg, keys.SplitH):
		dir := workspace.SplitVertical
		if key.Matches(msg, keys.SplitH) {
			dir = workspace.SplitHorizontal
		}
		active := ""
		if p := m.ws.ActivePane(); p != nil {
			active = p.Active
		}
		if id := m.ws.Split(dir, active); id == "" {
			m.setStatus("already split")
		}

	case key.Matches(msg, keys.Unsplit):
		m.ws.Unsplit()

	case key.Matches(msg, keys.FocusPane):
		m.focusOtherPane()

	case key.Matches(msg, keys.MoveTab):
		m.moveActiveTabToOtherPane()

	case key.Matches(msg, keys.Grow):
		m.resizeActive(5)

	case key.Matches(msg, keys.Shrink):
		m.resizeActive(-5)
	}

	m.syncPreview()
	return m, nil
}

// reorderActive shifts the active tab one slot left or right in its pane.
func (m *model) reorderActive(delta int) {
	p := m.ws.ActivePane()
	if p == nil || p.Active == "" {
		return
	}
	idx := -1
	for i, t := range p.Tabs {
		if t == p.Active {
			idx = i
			break
		}
	}
	m.ws.ReorderTabs(p.ID, idx, idx+delta)
}

func (m *model) focusOtherPane() {
	snap := m.ws.Snapshot()
	for _, p := range snap.Panes {
		if p.ID != snap.ActivePane {
			m.ws.SetActivePane(p.ID)
			return
		}
	}
}

// moveActiveTabToOtherPane captures a drag session for the active tab and
// drops it on the other pane, going through the same validation a mouse
// drag would.
func (m *model) moveActiveTabToOtherPane() {
	snap := m.ws.Snapshot()
	src := snap.Pane(snap.ActivePane)
	if src == nil || src.Active == "" {
		return
	}
	var dest string
	for _, p := range snap.Panes {
		if p.ID != src.ID {
			dest = p.ID
			break
		}
	}
	if dest == "" {
		return
	}
	idx := -1
	for i, t := range src.Tabs {
		if t == src.Active {
			idx = i
			break
		}
	}
	m.ws.MoveTabToPane(workspace.DragSession{
		TabPath:     src.Active,
		SourcePane:  src.ID,
		SourceIndex: idx,
	}, dest)
}

// resizeActive grows or shrinks the active pane by delta percent, keeping
// the partition summing to 100.
func (m *model) resizeActive(delta int) {
	snap := m.ws.Snapshot()
	if len(snap.Panes) != 2 {
		return
	}
	sizes := make([]int, 2)
	for i, p := range snap.Panes {
		sizes[i] = p.Size
		if p.ID == snap.ActivePane {
			sizes[i] += delta
		} else {
			sizes[i] -= delta
		}
	}
	if sizes[0] < 10 || sizes[1] < 10 {
		return
	}
	m.ws.ResizePanes(sizes)
}

func (m *model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	body := m.renderPanes(m.width, m.height-1)
	if m.showHelp {
		body = m.overlay(m.renderHelp())
	} else if pc := m.ws.PendingClose(); pc != nil {
		body = m.overlay(m.renderConfirm(pc))
	} else if m.finder != nil {
		body = m.overlay(m.renderFinder())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus())
}

func (m *model) renderPanes(width, height int) string {
	snap := m.ws.Snapshot()
	if len(snap.Panes) == 1 {
		return m.renderPane(snap, snap.Panes[0], width, height)
	}

	if snap.Split == workspace.SplitHorizontal {
		var parts []string
		remaining := height
		for i, p := range snap.Panes {
			h := height * p.Size / 100
			if i == len(snap.Panes)-1 {
				h = remaining
			}
			remaining -= h
			parts = append(parts, m.renderPane(snap, p, width, h))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	var parts []string
	remaining := width
	for i, p := range snap.Panes {
		w := width * p.Size / 100
		if i == len(snap.Panes)-1 {
			w = remaining
		}
		remaining -= w
		parts = append(parts, m.renderPane(snap, p, w, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) renderPane(snap *workspace.Snapshot, p *workspace.Pane, width, height int) string {
	style := paneStyle
	if p.ID == snap.ActivePane {
		style = activePaneStyle
	}
	innerW := width - style.GetHorizontalFrameSize()
	innerH := height - style.GetVerticalFrameSize()
	if innerW < 1 || innerH < 2 {
		return ""
	}

	bar := renderTabBar(m.ws, p, innerW)
	content := ""
	if p.Active != "" {
		if tab := snap.Tabs[p.Active]; tab != nil {
			content = clipContent(tab.Content, innerW, innerH-1)
		}
	}
	inner := lipgloss.JoinVertical(lipgloss.Left, bar, content)
	return style.Width(innerW).Height(innerH).Render(inner)
}

// clipContent trims document text to the pane viewport.
func clipContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		if len(l) > width {
			lines[i] = l[:width]
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) renderStatus() string {
	style := statusStyle
	if m.statusErr {
		style = statusErrStyle
	}
	left := m.status
	if left == "" {
		if tab := m.ws.ActiveTab(); tab != nil {
			left = fmt.Sprintf("%s [%s]", tab.Path, tab.Mode)
			if tab.Dirty {
				left += " *"
			}
		} else {
			left = "ctrl+p to open a file, ? for help"
		}
	}
	return style.Width(m.width).Render(left)
}

func (m *model) renderConfirm(pc *workspace.PendingClose) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d tab(s) have unsaved changes:\n\n", len(pc.Dirty))
	for _, path := range pc.Dirty {
		fmt.Fprintf(&b, "  %s\n", filepath.Base(path))
	}
	b.WriteString("\n[s]ave all   [d]iscard   [esc] cancel")
	return modalStyle.Render(b.String())
}

func (m *model) renderFinder() string {
	var b strings.Builder
	fmt.Fprintf(&b, "open: %s▌\n\n", m.finder.query)
	if len(m.finder.results) == 0 {
		b.WriteString(dimStyle.Render("no matches"))
	}
	for i, e := range m.finder.results {
		marker := "  "
		if i == m.finder.selected {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%s\n", marker, e.Rel)
	}
	return modalStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) renderHelp() string {
	cmds := allCommands()
	byCat := map[string][]command{}
	var cats []string
	for _, c := range cmds {
		if _, ok := byCat[c.Category]; !ok {
			cats = append(cats, c.Category)
		}
		byCat[c.Category] = append(byCat[c.Category], c)
	}
	sort.Strings(cats)

	var b strings.Builder
	for _, cat := range cats {
		fmt.Fprintf(&b, "%s\n", cat)
		for _, c := range byCat[cat] {
			fmt.Fprintf(&b, "  %-10s %s\n", c.Shortcut, c.Label)
		}
		b.WriteString("\n")
	}
	return modalStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// overlay centers a modal box in the content area, replacing the pane view
// for the frame it is up.
func (m *model) overlay(box string) string {
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}
