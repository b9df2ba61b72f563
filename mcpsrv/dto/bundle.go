package dto

type Bundle struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	OriginalPrice   float64   `json:"original_price,omitempty"`
	PriceLabel      string    `json:"price_label"`
	DiscountPercent int       `json:"discount_percent"`
	Savings         float64   `json:"savings"`
	Category        string    `json:"category"`
	AtlasHint       string    `json:"atlas_hint,omitempty"`
	Featured        bool      `json:"featured"`
	Agents          []Listing `json:"agents"`
}

type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type DevStats struct {
	DeveloperName string  `json:"developer_name"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalSales    int     `json:"total_sales"`
	AvgRating     float64 `json:"avg_rating"`
	AgentCount    int     `json:"agent_count"`
}
