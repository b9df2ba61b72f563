package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/config"
	"github.com/agentbazaar/bazaar/logging"
	"github.com/agentbazaar/bazaar/mcpsrv"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the protocol
	log, closer, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	source := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		CacheTTL: cfg.API.CacheTTL,
		Logger:   log.With().Str("component", "api").Logger(),
	})
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableAdmin: cfg.MCP.AdminEnabled(),
		APIKey:      cfg.MCP.APIKey,
		Logger:      log.With().Str("component", "mcp").Logger(),
	})

	go mcpsrv.RunCacheClearer(ctx, source, cfg.MCP.CacheClearInterval, log)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Error().Err(err).Msg("stdio mcp server failed")
		closer.Close()
		os.Exit(1)
	}
}
