// compass - a terminal chat client for retrieval-backed health answers.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phuslu/log"
	"golang.org/x/term"

	"github.com/morganforge/compass-tui/internal/backend"
	"github.com/morganforge/compass-tui/internal/config"
	"github.com/morganforge/compass-tui/internal/logging"
	"github.com/morganforge/compass-tui/internal/storage"
	"github.com/morganforge/compass-tui/internal/ui/chat"
	"github.com/morganforge/compass-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "print version and exit")
		backendURL  = flag.String("backend", "", "retrieval backend URL (overrides config)")
		configPath  = flag.String("config", "", "path to config.toml (overrides default location)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("compass %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// The TUI needs a real terminal on both ends.
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: compass must be run in an interactive terminal")
		os.Exit(1)
	}

	// Load configuration.
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		config.SetGlobal(cfg)
	} else {
		cfg = config.Global()
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}

	// Set up file logging; stdout belongs to the TUI.
	logPath, err := cfg.LogPath()
	if err == nil {
		err = config.EnsureConfigDir()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logPath = ""
	}
	logging.Setup(logPath, cfg.Log.Level)

	log.Info().Str("version", Version).Str("backend", cfg.Backend.URL).Msg("compass starting")

	// Conversation history store.
	historyPath, err := cfg.HistoryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store := storage.NewHistoryStoreWithPath(historyPath)
	conv, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Backend client.
	client := backend.NewClient(cfg.Backend.URL).
		WithTopK(cfg.Backend.TopK).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	// Build and run the TUI.
	theme := styles.NewTheme()
	m := chat.New(theme, conv, store, client, cfg.UI.WordWrap)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("tui exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info().Msg("compass exiting")
}
