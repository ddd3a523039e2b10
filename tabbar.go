package main

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/odvcencio/quill/workspace"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("250"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Reverse(true).Bold(true)
	tabSepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderTabBar draws one pane's tab strip. The active tab is highlighted,
// dirty tabs show a "*" marker and in-flight loads a "…" marker. The bar
// is truncated to width.
func renderTabBar(ws *workspace.Workspace, pane *workspace.Pane, width int) string {
	if len(pane.Tabs) == 0 {
		return tabStyle.Render("(no open tabs)")
	}

	var parts []string
	for i, path := range pane.Tabs {
		label := filepath.Base(path)
		if tab := ws.Tab(path); tab != nil && tab.Dirty {
			label += "*"
		}
		if ws.Loading(path) {
			label += "…"
		}
		style := tabStyle
		if path == pane.Active {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(label))
		if i < len(pane.Tabs)-1 {
			parts = append(parts, tabSepStyle.Render("│"))
		}
	}

	bar := strings.Join(parts, "")
	if lipgloss.Width(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return bar
}
