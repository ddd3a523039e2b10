package main

// command describes one editor command for the help overlay.
type command struct {
	Label    string
	Shortcut string
	Category string
}

// allCommands is the full command list, grouped for display.
func allCommands() []command {
	return []command{
		{Label: "Open File", Shortcut: "ctrl+p", Category: "File"},
		{Label: "Save Tab", Shortcut: "ctrl+s", Category: "File"},
		{Label: "Close Tab", Shortcut: "ctrl+w", Category: "File"},
		{Label: "Close Other Tabs", Shortcut: "alt+o", Category: "File"},
		{Label: "Close All Tabs", Shortcut: "alt+a", Category: "File"},
		{Label: "Close Saved Tabs", Shortcut: "alt+s", Category: "File"},
		{Label: "Next Tab", Shortcut: "tab", Category: "Tabs"},
		{Label: "Previous Tab", Shortcut: "shift+tab", Category: "Tabs"},
		{Label: "Move Tab Left", Shortcut: "alt+left", Category: "Tabs"},
		{Label: "Move Tab Right", Shortcut: "alt+right", Category: "Tabs"},
		{Label: "Toggle View Mode", Shortcut: "alt+v", Category: "Tabs"},
		{Label: "Split Vertical", Shortcut: "alt+\\", Category: "Panes"},
		{Label: "Split Horizontal", Shortcut: "alt+-", Category: "Panes"},
		{Label: "Unsplit", Shortcut: "alt+u", Category: "Panes"},
		{Label: "Focus Other Pane", Shortcut: "alt+tab", Category: "Panes"},
		{Label: "Move Tab To Other Pane", Shortcut: "alt+m", Category: "Panes"},
		{Label: "Grow Pane", Shortcut: "alt+=", Category: "Panes"},
		{Label: "Shrink Pane", Shortcut: "alt+'", Category: "Panes"},
		{Label: "Help", Shortcut: "?", Category: "App"},
		{Label: "Quit", Shortcut: "ctrl+q", Category: "App"},
	}
}
