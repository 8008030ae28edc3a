package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"focal/internal/adapters/sqlite"
	"focal/internal/adapters/tui"
	"focal/internal/adapters/tui/views"
	"focal/internal/adapters/xwindow"
	"focal/internal/application/tracker"
	"focal/internal/config"
	"focal/internal/domain"
)

func main() {
	dbFlag := flag.String("db", config.DatabasePath(), "path to the activity database")
	flag.Parse()

	// The TUI owns the terminal, so logs go to a file next to the
	// database.
	log := fileLogger(filepath.Join(filepath.Dir(*dbFlag), "focal.log"))

	store := sqlite.NewStore()
	if err := store.Open(*dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// The recorder pokes the running program after each save so the
	// dashboard refreshes without waiting for its periodic tick.
	var p *tea.Program
	recorder := tracker.NewRecorder(store, log, func(domain.Activity) {
		if p != nil {
			p.Send(views.ActivitySavedMsg{})
		}
	})

	trk := tracker.New(
		xwindow.NewSampler(),
		domain.DefaultClassifier(),
		recorder.Record,
		log,
		tracker.WithInterval(config.SampleInterval()),
	)

	app := tui.NewApp(store, trk)
	p = tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flush any open activity before exit.
	trk.Stop()
}

func fileLogger(path string) zerolog.Logger {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
