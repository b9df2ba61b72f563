package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/catalog"
	"github.com/agentbazaar/bazaar/mcpsrv/dto"
	"github.com/agentbazaar/bazaar/types"
)

const maxLimit = 100

type agentsListArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Optional category: productivity, marketing, personal, ecommerce, dev-tools, finance"`
	Sort     string `json:"sort,omitempty" jsonschema:"Sort order: popular (default), highest-rated, price-low, price-high"`
	Search   string `json:"search,omitempty" jsonschema:"Optional case-insensitive match on name or tags"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
	Featured bool   `json:"featured,omitempty" jsonschema:"Only featured agents"`
}

type agentGetArgs struct {
	Slug string `json:"slug" jsonschema:"Agent slug"`
}

type bundlesListArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
}

type bundleGetArgs struct {
	Slug string `json:"slug" jsonschema:"Bundle slug"`
}

type reviewsListArgs struct {
	AgentID string `json:"agent_id" jsonschema:"Agent id"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Optional maximum number of reviews"`
}

type devStatsArgs struct {
	DeveloperName string `json:"developer_name" jsonschema:"Developer name as shown on listings"`
}

type agentsListOutput struct {
	Category string        `json:"category"`
	Sort     string        `json:"sort"`
	Search   string        `json:"search"`
	Featured bool          `json:"featured"`
	Total    int           `json:"total"`
	Items    []dto.Listing `json:"items"`
}

type agentGetOutput struct {
	Item dto.ListingDetail `json:"item"`
}

type bundlesListOutput struct {
	Total int          `json:"total"`
	Items []dto.Bundle `json:"items"`
}

type bundleGetOutput struct {
	Item dto.Bundle `json:"item"`
}

type reviewsListOutput struct {
	AgentID string       `json:"agent_id"`
	Total   int          `json:"total"`
	Items   []dto.Review `json:"items"`
}

type categoriesListOutput struct {
	Total int            `json:"total"`
	Items []dto.Category `json:"items"`
}

type devStatsOutput struct {
	Stats  dto.DevStats  `json:"stats"`
	Agents []dto.Listing `json:"agents"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

// ToolObserver is told about every tool call.
type ToolObserver interface {
	ToolCall(tool string, failed bool)
}

type ServerOptions struct {
	EnableAdmin bool
	APIKey      string
	Logger      zerolog.Logger
	Observer    ToolObserver
}

type cacheClearSource interface {
	ClearCache()
}

// NewServer registers the read-only marketplace tools on a new MCP server.
// Purchases, submissions and waitlist signups are not exposed.
func NewServer(source types.MarketplaceSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "bazaar", Version: version}, nil)

	addTool(server, opts, &mcp.Tool{
		Name:        "agents_list",
		Description: "List marketplace agents, filtered by category and search text and sorted.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args agentsListArgs) (*mcp.CallToolResult, agentsListOutput, error) {
		return agentsListHandler(ctx, req, args, source)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "agent_get",
		Description: "Get an agent by slug, including its reviews.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args agentGetArgs) (*mcp.CallToolResult, agentGetOutput, error) {
		return agentGetHandler(ctx, req, args, source)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "bundles_list",
		Description: "List agent bundles with their discounts.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bundlesListArgs) (*mcp.CallToolResult, bundlesListOutput, error) {
		return bundlesListHandler(ctx, req, args, source)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "bundle_get",
		Description: "Get a bundle by slug with the agents it includes.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args bundleGetArgs) (*mcp.CallToolResult, bundleGetOutput, error) {
		return bundleGetHandler(ctx, req, args, source)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "reviews_list",
		Description: "List reviews of an agent.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args reviewsListArgs) (*mcp.CallToolResult, reviewsListOutput, error) {
		return reviewsListHandler(ctx, req, args, source)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "categories_list",
		Description: "List marketplace categories.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, categoriesListOutput, error) {
		return categoriesListHandler(ctx, req)
	})

	addTool(server, opts, &mcp.Tool{
		Name:        "dev_stats",
		Description: "Get sales statistics and listings of a developer.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args devStatsArgs) (*mcp.CallToolResult, devStatsOutput, error) {
		return devStatsHandler(ctx, req, args, source)
	})

	if opts.EnableAdmin && strings.TrimSpace(opts.APIKey) != "" {
		addTool(server, opts, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the API response cache (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return cacheClearHandler(ctx, req, source)
		})
	}

	return server
}

// addTool registers h and reports each call to the observer and the log.
func addTool[In, Out any](server *mcp.Server, opts *ServerOptions, tool *mcp.Tool, h mcp.ToolHandlerFor[In, Out]) {
	name := tool.Name
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args In) (*mcp.CallToolResult, Out, error) {
		result, out, err := h(ctx, req, args)
		failed := err != nil || (result != nil && result.IsError)
		if opts.Observer != nil {
			opts.Observer.ToolCall(name, failed)
		}
		if failed {
			opts.Logger.Warn().Str("tool", name).Str("reason", toolErrorText(result, err)).Msg("tool call failed")
		} else {
			opts.Logger.Debug().Str("tool", name).Msg("tool call")
		}
		return result, out, err
	})
}

func agentsListHandler(ctx context.Context, _ *mcp.CallToolRequest, args agentsListArgs, source types.MarketplaceSource) (*mcp.CallToolResult, agentsListOutput, error) {
	category := types.Category(strings.TrimSpace(strings.ToLower(args.Category)))
	if category != "" && !category.Valid() {
		return errorToolResult(fmt.Sprintf("invalid category %q", args.Category)), agentsListOutput{}, nil
	}
	if err := checkLimit(args.Limit); err != nil {
		return errorToolResult(err.Error()), agentsListOutput{}, nil
	}
	sort := catalog.ParseSort(args.Sort)
	search := strings.TrimSpace(args.Search)

	listings, err := source.ListAgents(ctx, types.AgentQuery{Category: category, Sort: sort.String(), Search: search})
	if err != nil {
		return errorToolResult("fetch agents failed"), agentsListOutput{}, nil
	}

	listings = catalog.Query(listings, catalog.Filter{Category: category, Search: search}, sort)
	if args.Featured {
		listings = catalog.Featured(listings)
	}
	listings = applyLimit(listings, args.Limit)

	return nil, agentsListOutput{
		Category: string(category),
		Sort:     sort.String(),
		Search:   search,
		Featured: args.Featured,
		Total:    len(listings),
		Items:    dto.FromListings(listings),
	}, nil
}

func agentGetHandler(ctx context.Context, _ *mcp.CallToolRequest, args agentGetArgs, source types.MarketplaceSource) (*mcp.CallToolResult, agentGetOutput, error) {
	slug := strings.TrimSpace(args.Slug)
	if slug == "" {
		return errorToolResult("slug is required"), agentGetOutput{}, nil
	}

	detail, err := api.LoadAgentDetail(ctx, source, slug)
	if err != nil {
		return errorToolResult(upstreamMessage(err, "agent")), agentGetOutput{}, nil
	}

	return nil, agentGetOutput{Item: dto.FromListingDetail(detail.Listing, detail.Reviews)}, nil
}

func bundlesListHandler(ctx context.Context, _ *mcp.CallToolRequest, args bundlesListArgs, source types.MarketplaceSource) (*mcp.CallToolResult, bundlesListOutput, error) {
	if err := checkLimit(args.Limit); err != nil {
		return errorToolResult(err.Error()), bundlesListOutput{}, nil
	}
	bundles, err := source.ListBundles(ctx)
	if err != nil {
		return errorToolResult("fetch bundles failed"), bundlesListOutput{}, nil
	}
	bundles = applyLimit(bundles, args.Limit)
	return nil, bundlesListOutput{Total: len(bundles), Items: dto.FromBundles(bundles)}, nil
}

func bundleGetHandler(ctx context.Context, _ *mcp.CallToolRequest, args bundleGetArgs, source types.MarketplaceSource) (*mcp.CallToolResult, bundleGetOutput, error) {
	slug := strings.TrimSpace(args.Slug)
	if slug == "" {
		return errorToolResult("slug is required"), bundleGetOutput{}, nil
	}
	bundle, err := source.GetBundle(ctx, slug)
	if err != nil {
		return errorToolResult(upstreamMessage(err, "bundle")), bundleGetOutput{}, nil
	}
	return nil, bundleGetOutput{Item: dto.FromBundle(bundle)}, nil
}

func reviewsListHandler(ctx context.Context, _ *mcp.CallToolRequest, args reviewsListArgs, source types.MarketplaceSource) (*mcp.CallToolResult, reviewsListOutput, error) {
	agentID := strings.TrimSpace(args.AgentID)
	if agentID == "" {
		return errorToolResult("agent_id is required"), reviewsListOutput{}, nil
	}
	if err := checkLimit(args.Limit); err != nil {
		return errorToolResult(err.Error()), reviewsListOutput{}, nil
	}
	reviews, err := source.ListReviews(ctx, agentID)
	if err != nil {
		return errorToolResult("fetch reviews failed"), reviewsListOutput{}, nil
	}
	reviews = applyLimit(reviews, args.Limit)
	return nil, reviewsListOutput{AgentID: agentID, Total: len(reviews), Items: dto.FromReviews(reviews)}, nil
}

func categoriesListHandler(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, categoriesListOutput, error) {
	return nil, categoriesListOutput{
		Total: len(catalog.Categories),
		Items: dto.FromCategories(catalog.Categories),
	}, nil
}

func devStatsHandler(ctx context.Context, _ *mcp.CallToolRequest, args devStatsArgs, source types.MarketplaceSource) (*mcp.CallToolResult, devStatsOutput, error) {
	name := strings.TrimSpace(args.DeveloperName)
	if name == "" {
		return errorToolResult("developer_name is required"), devStatsOutput{}, nil
	}
	overview, err := api.LoadDeveloperOverview(ctx, source, name)
	if err != nil {
		return errorToolResult("fetch developer stats failed"), devStatsOutput{}, nil
	}
	return nil, devStatsOutput{
		Stats:  dto.FromDevStats(overview.Stats),
		Agents: dto.FromListings(overview.Agents),
	}, nil
}

func cacheClearHandler(_ context.Context, _ *mcp.CallToolRequest, source types.MarketplaceSource) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	return nil, cacheClearOutput{Status: "ok"}, nil
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// upstreamMessage keeps upstream details out of tool results.
func upstreamMessage(err error, noun string) string {
	if errors.Is(err, api.ErrNotFound) {
		return noun + " not found"
	}
	return "fetch " + noun + " failed"
}

func toolErrorText(result *mcp.CallToolResult, err error) string {
	if err != nil {
		return err.Error()
	}
	if result != nil && len(result.Content) > 0 {
		if text, ok := result.Content[0].(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func checkLimit(limit int) error {
	if limit < 0 || limit > maxLimit {
		return fmt.Errorf("limit must be between 0 and %d", maxLimit)
	}
	return nil
}

func applyLimit[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}
