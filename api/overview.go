package api

import (
	"context"
	"fmt"

	"github.com/agentbazaar/bazaar/types"
	"golang.org/x/sync/errgroup"
)

// DeveloperOverview is what the developer portal dashboard shows.
type DeveloperOverview struct {
	Stats  types.DevStats
	Agents []types.Listing
}

// LoadDeveloperOverview fetches stats and listings of one developer
// concurrently. Either failure fails the whole load.
func LoadDeveloperOverview(ctx context.Context, source types.MarketplaceSource, developerName string) (DeveloperOverview, error) {
	var overview DeveloperOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := source.GetDevStats(gctx, developerName)
		if err != nil {
			return fmt.Errorf("developer stats: %w", err)
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		agents, err := source.GetDevAgents(gctx, developerName)
		if err != nil {
			return fmt.Errorf("developer agents: %w", err)
		}
		overview.Agents = agents
		return nil
	})
	if err := g.Wait(); err != nil {
		return DeveloperOverview{}, err
	}
	return overview, nil
}

// AgentDetail is a listing together with its reviews.
type AgentDetail struct {
	Listing types.Listing
	Reviews []types.Review
}

// LoadAgentDetail fetches a listing by slug and then its reviews. A failed
// review fetch leaves Reviews empty rather than failing the detail.
func LoadAgentDetail(ctx context.Context, source types.MarketplaceSource, slug string) (AgentDetail, error) {
	listing, err := source.GetAgent(ctx, slug)
	if err != nil {
		return AgentDetail{}, err
	}
	reviews, err := source.ListReviews(ctx, listing.ID)
	if err != nil {
		reviews = nil
	}
	return AgentDetail{Listing: listing, Reviews: reviews}, nil
}
