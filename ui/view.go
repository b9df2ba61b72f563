package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/catalog"
	"github.com/agentbazaar/bazaar/pricing"
	"github.com/agentbazaar/bazaar/types"
)

var tabs = []struct {
	state ViewState
	label string
}{
	{CatalogView, "1 Agents"},
	{BundlesView, "2 Bundles"},
	{DashboardView, "3 My Agents"},
	{DevPortalView, "4 Developers"},
	{WaitlistView, "5 Atlas"},
}

// View renders the current view
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderBody(),
		m.renderStatus(),
		m.help.View(m.keys.forView(m.state)),
	)
}

// tabFor maps nested views to the tab that owns them.
func (m Model) tabFor(state ViewState) ViewState {
	switch state {
	case AgentDetailView:
		return m.tabFor(m.back)
	case BundleDetailView:
		return BundlesView
	case SubmitView:
		return DevPortalView
	}
	return state
}

func (m Model) renderTabs() string {
	active := m.tabFor(m.state)
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t.state == active {
			parts[i] = ActiveTabStyle.Render(t.label)
		} else {
			parts[i] = InactiveTabStyle.Render(t.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderBody() string {
	switch m.state {
	case CatalogView:
		return m.filterBar() + "\n" + m.listOrMessage(m.agents, CatalogView, "Loading agents…", "No agents match your filters.")
	case AgentDetailView:
		if m.detail == nil {
			return m.detailPlaceholder(AgentDetailView, "agent")
		}
		return m.viewport.View()
	case BundlesView:
		return m.listOrMessage(m.bundles, BundlesView, "Loading bundles…", "No bundles available.")
	case BundleDetailView:
		if m.bundle == nil {
			return m.detailPlaceholder(BundleDetailView, "bundle")
		}
		return m.viewport.View()
	case DashboardView:
		return m.listOrMessage(m.owned, DashboardView, "Loading your agents…", "You have not purchased any agents yet.")
	case DevPortalView:
		return m.renderDevPortal()
	case SubmitView:
		return m.renderSubmitForm()
	case WaitlistView:
		return m.renderWaitlist()
	default:
		return "Unknown state\n"
	}
}

func (m Model) filterBar() string {
	if m.searching {
		return m.search.View()
	}
	bar := FilterLabelStyle.Render("category ") + FilterValueStyle.Render(catalog.CategoryLabel(m.filter.Category)) +
		FilterLabelStyle.Render("  sort ") + FilterValueStyle.Render(m.sort.Label())
	if m.filter.Search != "" {
		bar += FilterLabelStyle.Render("  search ") + FilterValueStyle.Render(m.filter.Search)
	}
	if m.featuredOnly {
		bar += FilterValueStyle.Render("  featured only")
	}
	return bar
}

func (m Model) listOrMessage(l list.Model, v ViewState, loadingText, emptyText string) string {
	if err := m.errs[v]; err != nil {
		return ErrorStyle.Render("Could not load: " + err.Error())
	}
	if len(l.Items()) == 0 {
		if m.isLoading(v) {
			return m.spinner.View() + " " + loadingText
		}
		return MutedStyle.Render(emptyText)
	}
	return l.View()
}

func (m Model) detailPlaceholder(v ViewState, noun string) string {
	if err := m.errs[v]; err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return ErrorStyle.Render(strings.ToUpper(noun[:1]) + noun[1:] + " not found.")
		}
		return ErrorStyle.Render("Could not load " + noun + ". Press esc to go back.")
	}
	return m.spinner.View() + " Loading " + noun + "…"
}

func (m Model) renderStatus() string {
	status := m.statusMsg
	if m.isLoading(m.state) {
		status = m.spinner.View() + " " + status
	}
	if m.statusErr {
		return ErrorStyle.Render(status)
	}
	return StatusBarStyle.Render(status)
}

// renderDetail refreshes the viewport for the open detail view.
func (m *Model) renderDetail() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	switch {
	case m.state == AgentDetailView && m.detail != nil:
		l := m.detail.Listing
		m.viewport.SetContent(renderAgentDetail(*m.detail, m.actions.state(agentAction(l.ID)), width))
	case m.state == BundleDetailView && m.bundle != nil:
		m.viewport.SetContent(renderBundleDetail(*m.bundle, m.actions.state(bundleAction(m.bundle.ID)), width))
	}
}

func renderAgentDetail(d api.AgentDetail, state actionState, width int) string {
	l := d.Listing
	var b strings.Builder

	b.WriteString(DetailTitleStyle.Render(strings.TrimSpace(l.Icon+" "+l.Name)) + "\n")
	b.WriteString(DetailTaglineStyle.Render(l.Description) + "\n\n")

	meta := []string{"by " + l.DeveloperName, catalog.CategoryLabel(l.Category)}
	if l.InstallType != "" {
		meta = append(meta, "install: "+string(l.InstallType))
	}
	if l.AtlasCompatible {
		meta = append(meta, "Atlas-Compatible")
	}
	b.WriteString(MutedStyle.Render(strings.Join(meta, " · ")) + "\n")
	b.WriteString(StarStyle.Render(pricing.Stars(l.Rating)) + " " +
		fmt.Sprintf("%s (%d reviews) · %s sales", pricing.Rating(l.Rating), l.ReviewCount, pricing.Count(l.SalesCount)) + "\n\n")

	b.WriteString(priceBlock(l.Price, l.OriginalPrice, pricing.Suffix(l.PriceType, l.Price)) + "\n")
	b.WriteString(actionButton(state, buyLabel(l.Price, pricing.Suffix(l.PriceType, l.Price))) + "\n")
	if l.DemoURL != "" {
		b.WriteString(MutedStyle.Render("Demo: "+l.DemoURL+"  (c to copy)") + "\n")
	}

	if body := strings.TrimSpace(l.LongDescription); body != "" {
		b.WriteString(SectionStyle.Render("About") + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(body) + "\n")
	}
	if len(l.Tags) > 0 {
		b.WriteString(MutedStyle.Render("#"+strings.Join(l.Tags, " #")) + "\n")
	}

	b.WriteString(SectionStyle.Render(fmt.Sprintf("Reviews (%d)", len(d.Reviews))) + "\n")
	if len(d.Reviews) == 0 {
		b.WriteString(MutedStyle.Render("No reviews yet.") + "\n")
	}
	for _, r := range d.Reviews {
		b.WriteString(StarStyle.Render(pricing.Stars(r.Rating)) + " " + DetailTitleStyle.Render(r.UserName) +
			MutedStyle.Render(" · "+r.Date) + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(r.Comment) + "\n")
	}
	return b.String()
}

func renderBundleDetail(bundle types.Bundle, state actionState, width int) string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render("📦 "+bundle.Name) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(DetailTaglineStyle.Render(bundle.Description)) + "\n\n")

	b.WriteString(priceBlock(bundle.Price, bundle.OriginalPrice, "") + "\n")
	if saved := bundle.OriginalPrice - bundle.Price; pricing.ShowOriginal(bundle.Price, bundle.OriginalPrice) && saved > 0 {
		b.WriteString(DiscountStyle.Render("You save "+pricing.Currency(saved)) + "\n")
	}
	b.WriteString(actionButton(state, buyLabel(bundle.Price, "")) + "\n")

	b.WriteString(SectionStyle.Render(fmt.Sprintf("Includes %d agents", len(bundle.Agents))) + "\n")
	for _, a := range bundle.Agents {
		line := fmt.Sprintf("%s %s  %s", a.Icon, a.Name, MutedStyle.Render(a.Description))
		b.WriteString(truncate(line, width) + "\n")
	}
	if bundle.AtlasHint != "" {
		b.WriteString("\n" + MutedStyle.Render(bundle.AtlasHint) + "\n")
	}
	return b.String()
}

func buyLabel(price float64, suffix string) string {
	if price == 0 {
		return "Get for Free"
	}
	return "Buy for " + pricing.Label(price) + suffix + "  (b)"
}

func actionButton(state actionState, idleLabel string) string {
	switch state {
	case actionPending:
		return ButtonPendingStyle.Render("Processing…")
	case actionSucceeded:
		return ButtonDoneStyle.Render("✓ Purchased")
	case actionFailed:
		return ButtonStyle.Render(idleLabel) + " " + ErrorStyle.Render("Purchase failed. Try again.")
	default:
		return ButtonStyle.Render(idleLabel)
	}
}

func (m Model) renderDevPortal() string {
	if err := m.errs[DevPortalView]; err != nil {
		return ErrorStyle.Render("Could not load developer dashboard: " + err.Error())
	}
	if m.overview == nil {
		return m.spinner.View() + " Loading developer dashboard…"
	}
	s := m.overview.Stats
	header := DetailTitleStyle.Render("Developer: "+firstNonEmpty(s.DeveloperName, m.session.DeveloperName)) + "\n" +
		fmt.Sprintf("%s %s   %s %s   %s %s   %s %d",
			MutedStyle.Render("Revenue"), PriceStyle.Render(pricing.Currency(s.TotalRevenue)),
			MutedStyle.Render("Sales"), pricing.Count(s.TotalSales),
			MutedStyle.Render("Avg rating"), StarStyle.Render("★ "+pricing.Rating(s.AvgRating)),
			MutedStyle.Render("Agents"), s.AgentCount) + "\n" +
		MutedStyle.Render("Press n to submit a new agent") + "\n"
	if len(m.devAgents.Items()) == 0 {
		return header + "\n" + MutedStyle.Render("No listings yet.")
	}
	return header + "\n" + m.devAgents.View()
}

func (m Model) renderSubmitForm() string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render("Submit a New Agent") + "\n")
	b.WriteString(MutedStyle.Render("Fill in the details. Our team reviews submissions within 48 hours.") + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := FieldLabelStyle.Render(fieldLabels[i])
		if i == m.form.focus {
			label = FocusedFieldLabelStyle.Render(fieldLabels[i])
		}
		b.WriteString(label + m.form.inputs[i].View() + "\n")
	}
	check := "[ ]"
	if m.form.atlas {
		check = "[x]"
	}
	b.WriteString(FieldLabelStyle.Render("Atlas") + check + MutedStyle.Render(" compatible (ctrl+t)") + "\n\n")

	switch m.actions.state(submitAction) {
	case actionPending:
		b.WriteString(ButtonPendingStyle.Render("Submitting…"))
	case actionSucceeded:
		b.WriteString(ButtonDoneStyle.Render("✓ Submitted for review"))
	default:
		b.WriteString(ButtonStyle.Render("Submit for Review  (ctrl+s)"))
	}
	if m.form.err != nil {
		b.WriteString("\n" + ErrorStyle.Render(m.form.err.Error()))
	}
	return b.String()
}

func (m Model) renderWaitlist() string {
	var b strings.Builder
	b.WriteString(DetailTitleStyle.Render("Atlas: your autonomous agent team") + "\n")
	b.WriteString(MutedStyle.Render("Join the waitlist and tell us what you want Atlas to do.") + "\n\n")

	if m.actions.state(waitlistAction) == actionSucceeded {
		b.WriteString(ButtonDoneStyle.Render("✓ You're on the list!") + "\n")
		return b.String()
	}

	label := FieldLabelStyle
	if !m.waitlist.focusGoals {
		label = FocusedFieldLabelStyle
	}
	b.WriteString(label.Render("Email") + m.waitlist.email.View() + "\n\n")

	for i, g := range types.WaitlistGoals {
		cursor := "  "
		if m.waitlist.focusGoals && i == m.waitlist.cursor {
			cursor = HelpKeyStyle.Render("> ")
		}
		check := "[ ]"
		if m.waitlist.selected[i] {
			check = "[x]"
		}
		b.WriteString(cursor + check + " " + g.Icon + " " + g.Label + "\n")
	}
	b.WriteString("\n")

	if m.actions.state(waitlistAction) == actionPending {
		b.WriteString(ButtonPendingStyle.Render("Joining…"))
	} else {
		b.WriteString(ButtonStyle.Render("Join Waitlist  (enter)"))
	}
	if m.waitlist.err != nil {
		b.WriteString("\n" + ErrorStyle.Render(m.waitlist.err.Error()))
	}
	return b.String()
}
