package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/odvcencio/quill/document"
	"github.com/odvcencio/quill/session"
	"github.com/odvcencio/quill/web"
)

func main() {
	rootFlag := flag.String("root", ".", "workspace root directory")
	webFlag := flag.String("web", "", "browser preview address (e.g. :8080); overrides config")
	flag.Parse()

	if err := run(*rootFlag, *webFlag, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "quill: %v\n", err)
		os.Exit(1)
	}
}

func run(root, webAddr string, openPaths []string) error {
	store, err := document.NewDiskStore(root)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(store.Root())
	if err != nil {
		return err
	}
	if webAddr == "" {
		webAddr = cfg.WebAddr
	}

	log, closeLog, err := openLogger(store.Root())
	if err != nil {
		return err
	}
	defer closeLog()

	m := newModel(store, cfg, log)

	if webAddr != "" {
		state := &previewState{store: store}
		srv := web.NewServer(state, log)
		m.attachPreview(srv, state)
		go func() {
			log.Info("preview server listening", "addr", webAddr)
			if err := http.ListenAndServe(webAddr, srv); err != nil {
				log.Error("preview server stopped", "err", err)
			}
		}()
	}

	var cmds []tea.Cmd
	for _, p := range openPaths {
		if cmd := m.openFile(p); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		for _, cmd := range cmds {
			prog.Send(cmd())
		}
	}()

	_, err = prog.Run()
	return err
}

// openLogger writes structured logs to .quill/quill.log; the TUI owns the
// terminal, so nothing may log to stdout.
func openLogger(root string) (*slog.Logger, func(), error) {
	dir := filepath.Join(root, session.StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create state dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "quill.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(slog.NewTextHandler(f, nil))
	return log, func() { _ = f.Close() }, nil
}
