package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/config"
	"github.com/agentbazaar/bazaar/logging"
	"github.com/agentbazaar/bazaar/mcpsrv"
	"github.com/agentbazaar/bazaar/metrics"
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
	log, closer, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	m := metrics.NewManager(metrics.WithProcessCollectors())
	source := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		CacheTTL: cfg.API.CacheTTL,
		Logger:   log.With().Str("component", "api").Logger(),
		Observer: m,
	})
	server := mcpsrv.NewServer(source, version, &mcpsrv.ServerOptions{
		EnableAdmin: cfg.MCP.AdminEnabled(),
		APIKey:      cfg.MCP.APIKey,
		Logger:      log.With().Str("component", "mcp").Logger(),
		Observer:    m,
	})
	mux := mcpsrv.NewServeMux(server, cfg.MCP, m.Handler(), mcpsrv.MiddlewareOptions{
		Logger: log.With().Str("component", "http").Logger(),
	})

	go mcpsrv.RunCacheClearer(ctx, source, cfg.MCP.CacheClearInterval, log)

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.MCP.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	log.Info().
		Str("addr", httpServer.Addr).
		Str("api", cfg.API.BaseURL).
		Bool("admin", cfg.MCP.AdminEnabled()).
		Msg("bazaar-mcp listening")
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server failed")
		closer.Close()
		os.Exit(1)
	}
}
