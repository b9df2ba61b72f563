package mcpsrv

import (
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentbazaar/bazaar/config"
)

// StreamableOptions maps the MCP config onto the SDK transport options.
func StreamableOptions(cfg config.MCPConfig) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}

// NewHandler serves one shared server over streamable HTTP.
func NewHandler(server *mcp.Server, opts *mcp.StreamableHTTPOptions) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, opts)
}

// NewServeMux wires /mcp behind the middleware, /healthz and, when given,
// /metrics.
func NewServeMux(server *mcp.Server, cfg config.MCPConfig, metrics http.Handler, opts MiddlewareOptions) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/mcp", WrapMCPHandler(NewHandler(server, StreamableOptions(cfg)), cfg, opts))
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}
