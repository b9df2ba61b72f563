package types

import "context"

// Category is a marketplace listing category as served by the API.
type Category string

const (
	Productivity Category = "productivity"
	Marketing    Category = "marketing"
	Personal     Category = "personal"
	Ecommerce    Category = "ecommerce"
	DevTools     Category = "dev-tools"
	Finance      Category = "finance"
)

// AllCategories lists the categories in storefront display order.
var AllCategories = []Category{Productivity, Marketing, Personal, Ecommerce, DevTools, Finance}

// Valid reports whether c is one of AllCategories.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// PriceType is the billing model of a listing.
type PriceType string

const (
	Lifetime PriceType = "lifetime"
	Monthly  PriceType = "monthly"
	Free     PriceType = "free"
)

// InstallType is how a buyer installs an agent.
type InstallType string

const (
	InstallAPI      InstallType = "api"
	InstallTelegram InstallType = "telegram"
	InstallZapier   InstallType = "zapier"
	InstallNoCode   InstallType = "nocode"
	InstallCustom   InstallType = "custom"
)

// Listing is a purchasable agent offering. It is a read projection of server
// state; the storefront never mutates it.
type Listing struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Slug            string      `json:"slug"`
	Description     string      `json:"description"`
	LongDescription string      `json:"long_description"`
	Category        Category    `json:"category"`
	Price           float64     `json:"price"`
	PriceType       PriceType   `json:"price_type"`
	OriginalPrice   float64     `json:"original_price"`
	Icon            string      `json:"icon"`
	Screenshots     []string    `json:"screenshots"`
	DemoURL         string      `json:"demo_url"`
	InstallType     InstallType `json:"install_type"`
	AtlasCompatible bool        `json:"atlas_compatible"`
	DeveloperName   string      `json:"developer_name"`
	Rating          float64     `json:"rating"`
	ReviewCount     int         `json:"review_count"`
	SalesCount      int         `json:"sales_count"`
	Featured        bool        `json:"featured"`
	Tags            []string    `json:"tags"`
}

// Bundle is a discounted grouping of listings sold as one unit. Agents is the
// authoritative "includes" list.
type Bundle struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Agents        []Listing `json:"agents"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price"`
	Category      string    `json:"category"`
	AtlasHint     string    `json:"atlas_hint"`
	Featured      bool      `json:"featured"`
}

// Review is a buyer review of a listing.
type Review struct {
	ID       string  `json:"id"`
	AgentID  string  `json:"agent_id"`
	UserName string  `json:"user_name"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
}

// DevStats is the aggregate view of one developer's listings.
type DevStats struct {
	DeveloperName string  `json:"developer_name"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalSales    int     `json:"total_sales"`
	AvgRating     float64 `json:"avg_rating"`
	AgentCount    int     `json:"agent_count"`
}

// SubmitResult is the API response to a listing submission.
type SubmitResult struct {
	Message string    `json:"message"`
	Agent   []Listing `json:"agent"`
}

// Session identifies the principal the storefront acts for. Both fields are
// opaque to the client.
type Session struct {
	UserID        string
	DeveloperName string
}

// AgentQuery holds the server-side list filters for GET /agents.
type AgentQuery struct {
	Category Category
	Sort     string
	Search   string
}

// MarketplaceSource is the data access abstraction used by the TUI and the
// MCP server. Implementations must be safe for concurrent use.
type MarketplaceSource interface {
	ListAgents(ctx context.Context, q AgentQuery) ([]Listing, error)
	GetAgent(ctx context.Context, slug string) (Listing, error)
	ListBundles(ctx context.Context) ([]Bundle, error)
	GetBundle(ctx context.Context, slug string) (Bundle, error)
	ListReviews(ctx context.Context, agentID string) ([]Review, error)

	PurchaseAgent(ctx context.Context, agentID string) (string, error)
	PurchaseBundle(ctx context.Context, bundleID string) (string, error)
	GetUserAgents(ctx context.Context, userID string) ([]Listing, error)

	GetDevStats(ctx context.Context, developerName string) (DevStats, error)
	GetDevAgents(ctx context.Context, developerName string) ([]Listing, error)
	SubmitAgent(ctx context.Context, s Submission) (SubmitResult, error)

	JoinWaitlist(ctx context.Context, entry WaitlistEntry) (string, error)
}
