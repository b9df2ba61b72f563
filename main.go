package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/config"
	"github.com/agentbazaar/bazaar/logging"
	"github.com/agentbazaar/bazaar/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// the alt screen owns the terminal, so logs go to log.file or nowhere
	log, closer, err := logging.Setup(cfg.Log, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	// every view refetches when opened; api.cache_ttl applies to the MCP
	// binaries only
	client := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		CacheTTL: -1,
		Logger:   log.With().Str("component", "api").Logger(),
	})
	model := ui.NewModel(client, cfg.Identity(),
		ui.WithLogger(log.With().Str("component", "ui").Logger()),
		ui.WithTimeout(cfg.API.Timeout),
	)

	log.Info().Stringer("config", cfg).Msg("starting storefront")
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
