// Package catalog implements the in-memory catalog query used by every
// listing view: category filter, text search and a stable sort.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agentbazaar/bazaar/types"
)

// Sort is a catalog ordering mode.
type Sort int

const (
	Popularity Sort = iota
	Rating
	PriceAscending
	PriceDescending
)

var sortNames = [...]string{"popular", "highest-rated", "price-low", "price-high"}
var sortLabels = [...]string{"Most Popular", "Highest Rated", "Price: Low to High", "Price: High to Low"}

// String returns the API wire name of the sort mode.
func (s Sort) String() string {
	if s < Popularity || s > PriceDescending {
		return sortNames[Popularity]
	}
	return sortNames[s]
}

// Label returns the human-readable name of the sort mode.
func (s Sort) Label() string {
	if s < Popularity || s > PriceDescending {
		return sortLabels[Popularity]
	}
	return sortLabels[s]
}

// Next cycles through the sort modes.
func (s Sort) Next() Sort {
	return (s + 1) % (PriceDescending + 1)
}

// ParseSort maps a wire name, short alias or display label to a Sort.
// Unknown values fall back to Popularity, matching the API default.
func ParseSort(raw string) Sort {
	raw = strings.TrimSpace(raw)
	for i, label := range sortLabels {
		if strings.EqualFold(raw, label) {
			return Sort(i)
		}
	}
	switch strings.ToLower(raw) {
	case "highest-rated", "rating":
		return Rating
	case "price-low", "price-asc":
		return PriceAscending
	case "price-high", "price-desc":
		return PriceDescending
	default:
		return Popularity
	}
}

// Filter narrows a catalog. Zero values match everything.
type Filter struct {
	Category types.Category
	Search   string
}

// Matches reports whether l passes the filter. Category and search compose
// with AND; search is a case-insensitive substring match on name or any tag.
func (f Filter) Matches(l types.Listing) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(l.Name), q) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Query returns a new slice holding the listings that match f, ordered by
// s. Ties keep their input order. The input is not modified.
func Query(listings []types.Listing, f Filter, s Sort) []types.Listing {
	out := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	slices.SortStableFunc(out, comparator(s))
	return out
}

func comparator(s Sort) func(a, b types.Listing) int {
	switch s {
	case Rating:
		return func(a, b types.Listing) int { return cmp.Compare(b.Rating, a.Rating) }
	case PriceAscending:
		return func(a, b types.Listing) int { return cmp.Compare(a.Price, b.Price) }
	case PriceDescending:
		return func(a, b types.Listing) int { return cmp.Compare(b.Price, a.Price) }
	default:
		return func(a, b types.Listing) int { return cmp.Compare(b.SalesCount, a.SalesCount) }
	}
}

// Featured returns the featured listings in input order.
func Featured(listings []types.Listing) []types.Listing {
	out := make([]types.Listing, 0)
	for _, l := range listings {
		if l.Featured {
			out = append(out, l)
		}
	}
	return out
}
