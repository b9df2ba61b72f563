package api

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/agentbazaar/bazaar/types"
)

type messageResponse struct {
	Message string `json:"message"`
}

// ListAgents fetches GET /agents with the non-empty query parameters.
func (c *Client) ListAgents(ctx context.Context, q types.AgentQuery) ([]types.Listing, error) {
	query := url.Values{}
	if q.Category != "" {
		query.Set("category", string(q.Category))
	}
	if q.Sort != "" {
		query.Set("sort", q.Sort)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		query.Set("search", s)
	}

	var listings []types.Listing
	if err := c.getCached(ctx, "list_agents", "/agents", query, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetAgent fetches one listing by slug. The long description is reduced to
// plain text.
func (c *Client) GetAgent(ctx context.Context, slug string) (types.Listing, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return types.Listing{}, errors.New("get agent: slug is required")
	}
	var listing types.Listing
	if err := c.getCached(ctx, "get_agent", "/agents/"+url.PathEscape(slug), nil, &listing); err != nil {
		return types.Listing{}, err
	}
	listing.LongDescription = PlainText(listing.LongDescription)
	return listing, nil
}

// ListBundles fetches GET /bundles.
func (c *Client) ListBundles(ctx context.Context) ([]types.Bundle, error) {
	var bundles []types.Bundle
	if err := c.getCached(ctx, "list_bundles", "/bundles", nil, &bundles); err != nil {
		return nil, err
	}
	return bundles, nil
}

// GetBundle fetches one bundle by slug.
func (c *Client) GetBundle(ctx context.Context, slug string) (types.Bundle, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return types.Bundle{}, errors.New("get bundle: slug is required")
	}
	var bundle types.Bundle
	if err := c.getCached(ctx, "get_bundle", "/bundles/"+url.PathEscape(slug), nil, &bundle); err != nil {
		return types.Bundle{}, err
	}
	return bundle, nil
}

// ListReviews fetches the reviews of one listing.
func (c *Client) ListReviews(ctx context.Context, agentID string) ([]types.Review, error) {
	var reviews []types.Review
	query := url.Values{"agent_id": []string{agentID}}
	if err := c.getCached(ctx, "list_reviews", "/reviews", query, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// PurchaseAgent buys one listing. A successful purchase invalidates the
// catalog cache since sales counts change.
func (c *Client) PurchaseAgent(ctx context.Context, agentID string) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "purchase_agent", "/purchases/agent", map[string]string{"agent_id": agentID}, &resp); err != nil {
		return "", err
	}
	c.ClearCache()
	return resp.Message, nil
}

// PurchaseBundle buys one bundle.
func (c *Client) PurchaseBundle(ctx context.Context, bundleID string) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "purchase_bundle", "/purchases/bundle", map[string]string{"bundle_id": bundleID}, &resp); err != nil {
		return "", err
	}
	c.ClearCache()
	return resp.Message, nil
}

// GetUserAgents lists the agents owned by userID, directly or via bundles.
func (c *Client) GetUserAgents(ctx context.Context, userID string) ([]types.Listing, error) {
	var listings []types.Listing
	query := url.Values{"user_id": []string{userID}}
	if err := c.get(ctx, "user_agents", "/purchases/agents", query, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetDevStats fetches the aggregate stats of one developer.
func (c *Client) GetDevStats(ctx context.Context, developerName string) (types.DevStats, error) {
	var stats types.DevStats
	query := url.Values{"developer_name": []string{developerName}}
	if err := c.get(ctx, "dev_stats", "/dev/stats", query, &stats); err != nil {
		return types.DevStats{}, err
	}
	return stats, nil
}

// GetDevAgents lists one developer's listings.
func (c *Client) GetDevAgents(ctx context.Context, developerName string) ([]types.Listing, error) {
	var listings []types.Listing
	query := url.Values{"developer_name": []string{developerName}}
	if err := c.get(ctx, "dev_agents", "/dev/agents", query, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// SubmitAgent validates and submits a listing draft. An invalid draft is
// rejected without a request.
func (c *Client) SubmitAgent(ctx context.Context, s types.Submission) (types.SubmitResult, error) {
	if err := s.Validate(); err != nil {
		return types.SubmitResult{}, err
	}
	var result types.SubmitResult
	if err := c.post(ctx, "submit_agent", "/dev/agents", s, &result); err != nil {
		return types.SubmitResult{}, err
	}
	return result, nil
}

// JoinWaitlist validates and submits a waitlist entry.
func (c *Client) JoinWaitlist(ctx context.Context, entry types.WaitlistEntry) (string, error) {
	if err := entry.Validate(); err != nil {
		return "", err
	}
	if entry.Goals == nil {
		entry.Goals = []string{}
	}
	var resp messageResponse
	if err := c.post(ctx, "join_waitlist", "/atlas/waitlist", entry, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
