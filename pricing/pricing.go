// Package pricing holds the display arithmetic shared by listing cards,
// bundle cards and detail views.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"github.com/agentbazaar/bazaar/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FreeLabel is shown instead of a price for free listings.
const FreeLabel = "Free"

// DiscountPercent returns round((1 - price/original) * 100), or 0 when
// original is not positive.
func DiscountPercent(price, original float64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round((1 - price/original) * 100))
}

// Label formats a price for display. A zero price is always "Free".
func Label(price float64) string {
	if price == 0 {
		return FreeLabel
	}
	return Currency(price)
}

// Currency formats an amount in dollars, omitting cents for whole amounts.
func Currency(amount float64) string {
	if amount == math.Trunc(amount) {
		return "$" + printer.Sprintf("%d", int64(amount))
	}
	return "$" + printer.Sprintf("%.2f", amount)
}

// ShowOriginal reports whether the struck-through original price is shown.
func ShowOriginal(price, original float64) bool {
	return original > 0 && price > 0
}

// Suffix returns the billing suffix shown after a paid monthly price.
func Suffix(priceType types.PriceType, price float64) string {
	if priceType == types.Monthly && price > 0 {
		return "/mo"
	}
	return ""
}

// Stars renders a five-glyph star rating: floor(rating) full stars, a half
// star when the fraction is at least .5, and empty stars for the rest.
func Stars(rating float64) string {
	rating = math.Max(0, math.Min(5, rating))
	full := int(math.Floor(rating))
	half := full < 5 && rating-float64(full) >= 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	if half {
		b.WriteString("½")
		full++
	}
	b.WriteString(strings.Repeat("☆", 5-full))
	return b.String()
}

// Rating formats a rating to one decimal place.
func Rating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

var printer = message.NewPrinter(language.English)

// Count formats an integer with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
