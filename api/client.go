// Package api is the HTTP client for the Agent Bazaar REST API. It
// implements types.MarketplaceSource.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/agentbazaar/bazaar/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL  = "http://localhost:8000/api"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = time.Minute

	userAgent = "bazaar/1.0 (+https://github.com/agentbazaar/bazaar)"

	// maxBodySize bounds how much of a response body is read.
	maxBodySize = 8 * 1024 * 1024
)

// Observer receives one call per completed request. status is 0 when the
// request failed before a response arrived.
type Observer interface {
	ObserveRequest(op string, status int, elapsed time.Duration)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
	Observer   Observer
}

// Client implements types.MarketplaceSource over HTTP. Catalog reads are
// served from an in-memory snapshot cache for CacheTTL.
type Client struct {
	baseURL  string
	client   *http.Client
	ttl      time.Duration
	log      zerolog.Logger
	observer Observer

	cache map[string]cachedResult
	mu    sync.Mutex
}

type cachedResult struct {
	body      []byte
	timestamp time.Time
}

// Compile-time interface check
var _ types.MarketplaceSource = (*Client)(nil)

// New creates a Client with the given options.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ttl := opts.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  baseURL,
		client:   httpClient,
		ttl:      ttl,
		log:      opts.Logger,
		observer: opts.Observer,
		cache:    make(map[string]cachedResult),
	}
}

// ClearCache drops every cached catalog snapshot.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cachedResult)
}

// endpoint joins path and query onto the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getCached performs a GET, serving and storing the raw body in the cache.
// A negative TTL disables caching.
func (c *Client) getCached(ctx context.Context, op, path string, query url.Values, out any) error {
	u := c.endpoint(path, query)

	if c.ttl > 0 {
		c.mu.Lock()
		cached, ok := c.cache[u]
		c.mu.Unlock()
		if ok && time.Since(cached.timestamp) < c.ttl {
			if err := json.Unmarshal(cached.body, out); err == nil {
				return nil
			}
		}
	}

	body, err := c.do(ctx, op, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", op, err)
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.cache[u] = cachedResult{body: body, timestamp: time.Now()}
		c.mu.Unlock()
	}
	return nil
}

// get performs an uncached GET.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", op, err)
	}
	return nil
}

// post sends payload as JSON and decodes the response into out.
func (c *Client) post(ctx context.Context, op, path string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", op, err)
	}
	body, err := c.do(ctx, op, http.MethodPost, c.endpoint(path, nil), raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", op, err)
	}
	return nil
}

// do executes one request and returns the body of a 2xx response. Any other
// status becomes a *StatusError.
func (c *Client) do(ctx context.Context, op, method, u string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.observe(op, 0, time.Since(start))
		c.log.Warn().Err(err).Str("op", op).Str("request_id", requestID).Msg("api request failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	elapsed := time.Since(start)
	c.observe(op, resp.StatusCode, elapsed)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Str("request_id", requestID).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Op: op, Status: resp.StatusCode, Text: http.StatusText(resp.StatusCode)}
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode).Str("request_id", requestID).Msg("api returned error status")
		return nil, statusErr
	}
	return body, nil
}

func (c *Client) observe(op string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(op, status, elapsed)
	}
}
