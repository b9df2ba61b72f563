package mcpsrv

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentbazaar/bazaar/config"
)

// MiddlewareOptions carries the collaborators of WrapMCPHandler.
type MiddlewareOptions struct {
	Logger zerolog.Logger
	// Now is the token bucket clock; nil means time.Now.
	Now func() time.Time
}

// WrapMCPHandler guards next with an origin allowlist, a global token
// bucket and, when an API key is configured, bearer or X-API-Key auth.
// The checks run in that order.
func WrapMCPHandler(next http.Handler, cfg config.MCPConfig, opts MiddlewareOptions) http.Handler {
	rps := cfg.RPS
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	h := next
	if cfg.APIKey != "" {
		h = requireAPIKey(h, cfg.APIKey, opts.Logger)
	}
	h = rateLimit(h, newTokenBucket(rps, burst, now), opts.Logger)
	return originAllowlist(h, cfg.AllowedOrigins, opts.Logger)
}

// originAllowlist lets requests without an Origin header through. Browser
// requests must carry a listed origin; an empty list rejects them all.
func originAllowlist(next http.Handler, origins []string, log zerolog.Logger) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := allowed[origin]; !ok {
			log.Warn().Str("origin", origin).Msg("rejected origin")
			http.Error(w, "origin not allowed", http.StatusForbidden)
			return
		}
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Vary", "Origin")
		h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, X-API-Key, Mcp-Protocol-Version, Mcp-Session-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimit(next http.Handler, limiter *tokenBucket, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			log.Debug().Str("remote", r.RemoteAddr).Msg("rate limited")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requireAPIKey(next http.Handler, expected string, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validAPIKey(r, expected) {
			log.Warn().Str("remote", r.RemoteAddr).Msg("rejected api key")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validAPIKey(r *http.Request, expected string) bool {
	apiKey := strings.TrimSpace(r.Header.Get("X-API-Key"))
	if secureEqual(apiKey, expected) {
		return true
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return false
	}
	return secureEqual(strings.TrimSpace(token), expected)
}

func secureEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
	now    func() time.Time
}

func newTokenBucket(rps float64, burst int, now func() time.Time) *tokenBucket {
	b := float64(burst)
	return &tokenBucket{
		rps:    rps,
		burst:  b,
		tokens: b,
		last:   now(),
		now:    now,
	}
}

func (b *tokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.tokens = min(b.burst, b.tokens+now.Sub(b.last).Seconds()*b.rps)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}
