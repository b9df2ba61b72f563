package dto

import (
	"github.com/agentbazaar/bazaar/catalog"
	"github.com/agentbazaar/bazaar/pricing"
	"github.com/agentbazaar/bazaar/types"
)

func FromListing(l types.Listing) Listing {
	out := Listing{
		ID:              l.ID,
		Slug:            l.Slug,
		Name:            l.Name,
		Description:     l.Description,
		Category:        string(l.Category),
		CategoryLabel:   catalog.CategoryLabel(l.Category),
		Tags:            append([]string{}, l.Tags...),
		Icon:            l.Icon,
		Price:           l.Price,
		PriceLabel:      pricing.Label(l.Price) + pricing.Suffix(l.PriceType, l.Price),
		PriceType:       string(l.PriceType),
		InstallType:     string(l.InstallType),
		DemoURL:         l.DemoURL,
		Rating:          l.Rating,
		ReviewCount:     l.ReviewCount,
		SalesCount:      l.SalesCount,
		DeveloperName:   l.DeveloperName,
		Featured:        l.Featured,
		AtlasCompatible: l.AtlasCompatible,
	}
	// the original price only means something next to a paid price
	if pricing.ShowOriginal(l.Price, l.OriginalPrice) {
		out.OriginalPrice = l.OriginalPrice
		out.DiscountPercent = pricing.DiscountPercent(l.Price, l.OriginalPrice)
	}
	return out
}

func FromListings(listings []types.Listing) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, FromListing(l))
	}
	return out
}

func FromListingDetail(l types.Listing, reviews []types.Review) ListingDetail {
	return ListingDetail{
		Listing:         FromListing(l),
		LongDescription: l.LongDescription,
		Screenshots:     append([]string{}, l.Screenshots...),
		Reviews:         FromReviews(reviews),
	}
}

func FromReview(r types.Review) Review {
	return Review{
		ID:       r.ID,
		AgentID:  r.AgentID,
		UserName: r.UserName,
		Rating:   r.Rating,
		Comment:  r.Comment,
		Date:     r.Date,
	}
}

func FromReviews(reviews []types.Review) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, FromReview(r))
	}
	return out
}

func FromBundle(b types.Bundle) Bundle {
	out := Bundle{
		ID:          b.ID,
		Slug:        b.Slug,
		Name:        b.Name,
		Description: b.Description,
		Price:       b.Price,
		PriceLabel:  pricing.Label(b.Price),
		Category:    b.Category,
		AtlasHint:   b.AtlasHint,
		Featured:    b.Featured,
		Agents:      FromListings(b.Agents),
	}
	if pricing.ShowOriginal(b.Price, b.OriginalPrice) {
		out.OriginalPrice = b.OriginalPrice
		out.DiscountPercent = pricing.DiscountPercent(b.Price, b.OriginalPrice)
		if saved := b.OriginalPrice - b.Price; saved > 0 {
			out.Savings = saved
		}
	}
	return out
}

func FromBundles(bundles []types.Bundle) []Bundle {
	out := make([]Bundle, 0, len(bundles))
	for _, b := range bundles {
		out = append(out, FromBundle(b))
	}
	return out
}

func FromCategories(categories []catalog.CategoryInfo) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, Category{Value: string(c.Value), Label: c.Label, Icon: c.Icon})
	}
	return out
}

func FromDevStats(s types.DevStats) DevStats {
	return DevStats{
		DeveloperName: s.DeveloperName,
		TotalRevenue:  s.TotalRevenue,
		TotalSales:    s.TotalSales,
		AvgRating:     s.AvgRating,
		AgentCount:    s.AgentCount,
	}
}
