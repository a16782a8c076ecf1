// cmd/nexthr/main.go
//
// Entry point for the NextHR console.
//
// Flow:
// 1. Resolve the config directory (NEXTHR_CONFIG_DIR or ~/.nexthr)
// 2. Load config, open the log file and the on-disk session store
// 3. Build the API gateway; its 401 hook tears the session down
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexthr/console/internal/config"
	"github.com/nexthr/console/internal/gateway"
	"github.com/nexthr/console/internal/logging"
	"github.com/nexthr/console/internal/session"
	"github.com/nexthr/console/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nexthr: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := config.ResolveDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	log, err := logging.Open(cfg.LogDir(), cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Close()

	store, err := session.Open(cfg.SessionDir(), log.Logger)
	if err != nil {
		return err
	}

	// On a 401 the stored session is stale; clear it so the next screen
	// renders from a clean slate. The TUI handles the redirect.
	api := gateway.New(cfg.API.BaseURL, cfg.Timeout(), store,
		gateway.WithLogger(log.Logger),
		gateway.WithUnauthorizedHook(store.End),
	)

	log.Info().Str("server", cfg.API.BaseURL).Msg("console starting")

	p := tea.NewProgram(
		tui.NewApp(cfg, log, store, api),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
