package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/agentbazaar/bazaar/catalog"
	"github.com/agentbazaar/bazaar/pricing"
	"github.com/agentbazaar/bazaar/types"
)

const indent = "    "

// agentItem adapts a listing to list.Item.
type agentItem struct {
	listing types.Listing
}

func (i agentItem) FilterValue() string { return i.listing.Name }

type bundleItem struct {
	bundle types.Bundle
}

func (i bundleItem) FilterValue() string { return i.bundle.Name }

func agentItems(listings []types.Listing) []list.Item {
	items := make([]list.Item, len(listings))
	for i, l := range listings {
		items[i] = agentItem{listing: l}
	}
	return items
}

func bundleItems(bundles []types.Bundle) []list.Item {
	items := make([]list.Item, len(bundles))
	for i, b := range bundles {
		items[i] = bundleItem{bundle: b}
	}
	return items
}

// AgentDelegate renders listing cards in three lines.
type AgentDelegate struct{}

func (d AgentDelegate) Height() int { return 3 }
func (d AgentDelegate) Spacing() int { return 0 }
func (d AgentDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render renders a single listing card
func (d AgentDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(agentItem)
	if !ok {
		return
	}
	l := it.listing
	selected := index == m.Index()

	// Line 1: icon + name, price block right-aligned
	price := priceBlock(l.Price, l.OriginalPrice, pricing.Suffix(l.PriceType, l.Price))
	line1 := headline(l.Icon, l.Name, price, m.Width(), selected)

	// Line 2: short description
	line2 := indent + lipgloss.NewStyle().Foreground(DraculaForeground).
		Render(truncate(l.Description, m.Width()-len(indent)))

	// Line 3: rating, sales, developer, category
	meta := fmt.Sprintf("%s %s (%d) · %s sales · by %s · %s",
		pricing.Stars(l.Rating), pricing.Rating(l.Rating), l.ReviewCount,
		pricing.Count(l.SalesCount), l.DeveloperName, catalog.CategoryLabel(l.Category))
	if l.AtlasCompatible {
		meta += " · Atlas"
	}
	if l.Featured {
		meta += " · Featured"
	}
	line3 := indent + MutedStyle.Render(truncate(meta, m.Width()-len(indent)))

	fmt.Fprint(w, line1+"\n"+line2+"\n"+line3)
}

// BundleDelegate renders bundle cards in three lines.
type BundleDelegate struct{}

func (d BundleDelegate) Height() int { return 3 }
func (d BundleDelegate) Spacing() int { return 0 }
func (d BundleDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

// Render renders a single bundle card
func (d BundleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(bundleItem)
	if !ok {
		return
	}
	b := it.bundle
	selected := index == m.Index()

	line1 := headline("📦", b.Name, priceBlock(b.Price, b.OriginalPrice, ""), m.Width(), selected)
	line2 := indent + lipgloss.NewStyle().Foreground(DraculaForeground).
		Render(truncate(b.Description, m.Width()-len(indent)))

	names := make([]string, len(b.Agents))
	for i, a := range b.Agents {
		names[i] = a.Name
	}
	meta := fmt.Sprintf("%d agents: %s", len(b.Agents), strings.Join(names, " • "))
	line3 := indent + MutedStyle.Render(truncate(meta, m.Width()-len(indent)))

	fmt.Fprint(w, line1+"\n"+line2+"\n"+line3)
}

// headline lays out "icon name ...... price" within width.
func headline(icon, name, price string, width int, selected bool) string {
	lead := icon + "  "
	if icon == "" {
		lead = indent
	}
	available := width - runewidth.StringWidth(lead) - lipgloss.Width(price) - 1
	if available < 0 {
		available = 0
	}
	name = runewidth.FillRight(truncate(name, available), available)

	nameStyle := lipgloss.NewStyle().Foreground(DraculaCyan)
	if selected {
		nameStyle = lipgloss.NewStyle().Foreground(DraculaPink).Bold(true)
	}
	return lead + nameStyle.Render(name) + " " + price
}

// priceBlock renders "$49 $79 -38%" with the original struck through, or
// "Free".
func priceBlock(price, original float64, suffix string) string {
	s := PriceStyle.Render(pricing.Label(price) + suffix)
	if pricing.ShowOriginal(price, original) {
		s += " " + OriginalPriceStyle.Render(pricing.Currency(original))
		if pct := pricing.DiscountPercent(price, original); pct > 0 {
			s += " " + DiscountStyle.Render(fmt.Sprintf("-%d%%", pct))
		}
	}
	return s
}

// truncate shortens s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
