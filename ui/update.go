package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentbazaar/bazaar/catalog"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Focused text inputs own the keyboard.
	switch {
	case m.searching:
		return m.updateSearch(msg)
	case m.state == SubmitView:
		return m.updateSubmitForm(msg)
	case m.state == WaitlistView && !m.waitlist.focusGoals:
		return m.updateWaitlist(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Catalog):
		return m, m.switchTo(CatalogView)
	case key.Matches(msg, m.keys.Bundles):
		return m, m.switchTo(BundlesView)
	case key.Matches(msg, m.keys.Dashboard):
		return m, m.switchTo(DashboardView)
	case key.Matches(msg, m.keys.DevPortal):
		return m, m.switchTo(DevPortalView)
	case key.Matches(msg, m.keys.Waitlist):
		return m, m.switchTo(WaitlistView)
	}

	switch m.state {
	case CatalogView:
		return m.updateCatalog(msg)
	case AgentDetailView:
		return m.updateAgentDetail(msg)
	case BundlesView:
		return m.updateBundles(msg)
	case BundleDetailView:
		return m.updateBundleDetail(msg)
	case DashboardView:
		return m.updateDashboard(msg)
	case DevPortalView:
		return m.updateDevPortal(msg)
	case WaitlistView:
		return m.updateWaitlist(msg)
	}
	return m, nil
}

func (m Model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.savedSearch = m.filter.Search
		m.search.SetValue(m.filter.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Category):
		m.filter.Category = catalog.NextCategory(m.filter.Category)
		m.refreshCatalog()
		return m, m.loadCatalog()
	case key.Matches(msg, m.keys.Sort):
		m.sort = m.sort.Next()
		m.refreshCatalog()
		return m, m.loadCatalog()
	case key.Matches(msg, m.keys.Featured):
		m.featuredOnly = !m.featuredOnly
		m.refreshCatalog()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.dropCache()
		return m, m.loadCatalog()
	case key.Matches(msg, m.keys.Enter):
		if it, ok := m.agents.SelectedItem().(agentItem); ok {
			return m, m.openAgent(it.listing.Slug)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		if m.filter.Search == "" {
			return m, nil
		}
		m.filter.Search = ""
		m.search.SetValue("")
		m.refreshCatalog()
		return m, m.loadCatalog()
	}

	var cmd tea.Cmd
	m.agents, cmd = m.agents.Update(msg)
	return m, cmd
}

// updateSearch narrows the visible list on every keystroke and asks the
// server on enter.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.filter.Search = strings.TrimSpace(m.search.Value())
		m.refreshCatalog()
		return m, m.loadCatalog()
	case "esc":
		m.searching = false
		m.search.Blur()
		m.filter.Search = m.savedSearch
		m.search.SetValue(m.savedSearch)
		m.refreshCatalog()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Search = strings.TrimSpace(m.search.Value())
	m.refreshCatalog()
	return m, cmd
}

func (m Model) updateAgentDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = m.back
		return m, nil
	case key.Matches(msg, m.keys.Buy):
		return m, m.buyAgent()
	case key.Matches(msg, m.keys.Copy):
		if m.detail != nil && m.detail.Listing.DemoURL != "" {
			return m, copyToClipboard(m.detail.Listing.DemoURL)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) buyAgent() tea.Cmd {
	if m.detail == nil {
		return nil
	}
	id := m.detail.Listing.ID
	if !m.actions.begin(agentAction(id)) {
		return nil
	}
	m.setStatus("Processing purchase…", false)
	m.renderDetail()
	return purchaseAgent(m.source, m.timeout, id)
}

func (m Model) updateBundles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if it, ok := m.bundles.SelectedItem().(bundleItem); ok {
			return m, m.openBundle(it.bundle)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.dropCache()
		return m, m.loadBundles()
	case key.Matches(msg, m.keys.Back):
		return m, nil
	}

	var cmd tea.Cmd
	m.bundles, cmd = m.bundles.Update(msg)
	return m, cmd
}

func (m Model) updateBundleDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = m.back
		return m, nil
	case key.Matches(msg, m.keys.Buy):
		return m, m.buyBundle()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) buyBundle() tea.Cmd {
	if m.bundle == nil {
		return nil
	}
	id := m.bundle.ID
	if !m.actions.begin(bundleAction(id)) {
		return nil
	}
	m.setStatus("Processing purchase…", false)
	m.renderDetail()
	return purchaseBundle(m.source, m.timeout, id)
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if it, ok := m.owned.SelectedItem().(agentItem); ok {
			return m, m.openAgent(it.listing.Slug)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.dropCache()
		return m, m.loadOwned()
	case key.Matches(msg, m.keys.Back):
		return m, nil
	}

	var cmd tea.Cmd
	m.owned, cmd = m.owned.Update(msg)
	return m, cmd
}

func (m Model) updateDevPortal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		// a draft still in flight keeps its form; anything else starts fresh
		if m.actions.state(submitAction) != actionPending {
			m.form = newSubmitForm()
			m.actions.reset(submitAction)
		}
		m.state = SubmitView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Enter):
		if it, ok := m.devAgents.SelectedItem().(agentItem); ok {
			return m, m.openAgent(it.listing.Slug)
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.dropCache()
		return m, m.loadDevOverview()
	case key.Matches(msg, m.keys.Back):
		return m, nil
	}

	var cmd tea.Cmd
	m.devAgents, cmd = m.devAgents.Update(msg)
	return m, cmd
}

func (m Model) updateSubmitForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = DevPortalView
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.keys.Atlas):
		m.form.atlas = !m.form.atlas
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitDraft()
	case key.Matches(msg, m.keys.Enter):
		if m.form.focus == fieldCount-1 {
			return m, m.submitDraft()
		}
		return m, m.form.setFocus(m.form.focus + 1)
	}
	return m, m.form.update(msg)
}

// submitDraft validates the form and sends it once.
func (m *Model) submitDraft() tea.Cmd {
	switch m.actions.state(submitAction) {
	case actionPending, actionSucceeded:
		return nil
	}
	draft, err := m.form.draft()
	if err != nil {
		m.form.err = err
		return nil
	}
	m.form.err = nil
	m.actions.begin(submitAction)
	return submitAgent(m.source, m.timeout, draft)
}

func (m Model) updateWaitlist(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.PrevField):
		return m, m.waitlist.switchFocus()
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Enter):
		return m, m.joinWaitlist()
	}

	if !m.waitlist.focusGoals {
		if key.Matches(msg, m.keys.Back) {
			return m, m.waitlist.switchFocus()
		}
		var cmd tea.Cmd
		m.waitlist.email, cmd = m.waitlist.email.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.waitlist.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.waitlist.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		m.waitlist.toggle()
	}
	return m, nil
}

func (m *Model) joinWaitlist() tea.Cmd {
	switch m.actions.state(waitlistAction) {
	case actionPending, actionSucceeded:
		return nil
	}
	entry, err := m.waitlist.entry()
	if err != nil {
		m.waitlist.err = err
		return nil
	}
	m.waitlist.err = nil
	m.actions.begin(waitlistAction)
	return joinWaitlist(m.source, m.timeout, entry)
}
