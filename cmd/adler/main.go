package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"adler/internal/adapters/editor"
	"adler/internal/adapters/pdf"
	"adler/internal/adapters/storage"
	"adler/internal/adapters/tui"
	"adler/internal/adapters/watcher"
	"adler/internal/application"
	"adler/internal/bootstrap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The sink buffers projections until the program is attached
	sink := tui.NewSink()
	env, err := bootstrap.Open(ctx, sink)
	if err != nil {
		return err
	}
	defer env.Close()
	cfg := env.Config

	app := tui.NewApp(env.Doc, tui.Options{
		Editor:    editor.NewOpener(cfg.Editor),
		Exporter:  pdf.NewExporter(env.Log),
		ExportDir: cfg.ExportDir,
		Confirmer: application.NewConfirmer(cfg.ConfirmTimeout),
		Throttle:  application.NewThrottle(cfg.RedrawInterval, cfg.RedrawDelay),
		Sink:      sink,
		Logger:    env.Log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	sink.Attach(p)

	// Reload when another process (adler-cli, adler-mcp) rewrites the store
	if path := storage.WatchPath(cfg); path != "" {
		w, err := watcher.New(path, env.Log, func() { p.Send(tui.ReloadMsg{}) })
		if err != nil {
			env.Log.Warn("store watcher disabled", "error", err)
		} else {
			defer w.Stop()
			go func() {
				if err := w.Start(ctx); err != nil {
					env.Log.Warn("store watcher failed", "error", err)
				}
			}()
		}
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
