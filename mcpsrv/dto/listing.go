package dto

type Listing struct {
	ID              string   `json:"id"`
	Slug            string   `json:"slug"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	CategoryLabel   string   `json:"category_label"`
	Tags            []string `json:"tags"`
	Icon            string   `json:"icon"`
	Price           float64  `json:"price"`
	OriginalPrice   float64  `json:"original_price,omitempty"`
	PriceLabel      string   `json:"price_label"`
	PriceType       string   `json:"price_type"`
	DiscountPercent int      `json:"discount_percent"`
	InstallType     string   `json:"install_type,omitempty"`
	DemoURL         string   `json:"demo_url,omitempty"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"review_count"`
	SalesCount      int      `json:"sales_count"`
	DeveloperName   string   `json:"developer_name"`
	Featured        bool     `json:"featured"`
	AtlasCompatible bool     `json:"atlas_compatible"`
}

type ListingDetail struct {
	Listing
	LongDescription string   `json:"long_description"`
	Screenshots     []string `json:"screenshots"`
	Reviews         []Review `json:"reviews"`
}

type Review struct {
	ID       string  `json:"id"`
	AgentID  string  `json:"agent_id"`
	UserName string  `json:"user_name"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	Date     string  `json:"date"`
}
