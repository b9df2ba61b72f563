package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/catalog"
	"github.com/agentbazaar/bazaar/types"
)

// ViewState represents the current view mode
type ViewState int

const (
	CatalogView ViewState = iota
	AgentDetailView
	BundlesView
	BundleDetailView
	DashboardView
	DevPortalView
	SubmitView
	WaitlistView
)

var errNoDeveloper = errors.New("no developer name configured (set BAZAAR_SESSION_DEVELOPER_NAME)")

// Model is the main TUI model
type Model struct {
	source  types.MarketplaceSource
	session types.Session
	log     zerolog.Logger
	timeout time.Duration

	agents    list.Model
	bundles   list.Model
	owned     list.Model
	devAgents list.Model
	viewport  viewport.Model
	spinner   spinner.Model
	help      help.Model
	search    textinput.Model
	keys      keyMap

	state ViewState
	back  ViewState

	listings     []types.Listing
	filter       catalog.Filter
	sort         catalog.Sort
	featuredOnly bool
	searching    bool
	savedSearch  string

	detail   *api.AgentDetail
	bundle   *types.Bundle
	overview *api.DeveloperOverview
	form     submitForm
	waitlist waitlistForm

	actions  actionGuard
	requests *requestTracker
	errs     map[ViewState]error

	width     int
	height    int
	statusMsg string
	statusErr bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithTimeout bounds every request issued by the UI.
func WithTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func newList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = TitleStyle
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// NewModel creates a Model that reads from source and acts for session.
func NewModel(source types.MarketplaceSource, session types.Session, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name or tag"
	search.CharLimit = 80

	m := Model{
		source:    source,
		session:   session,
		log:       zerolog.Nop(),
		timeout:   api.DefaultTimeout,
		agents:    newList("Agents", AgentDelegate{}),
		bundles:   newList("Bundles", BundleDelegate{}),
		owned:     newList("My Agents", AgentDelegate{}),
		devAgents: newList("Your Listings", AgentDelegate{}),
		viewport:  viewport.New(0, 0),
		spinner:   s,
		help:      help.New(),
		search:    search,
		keys:      keys,
		state:     CatalogView,
		sort:      catalog.Popularity,
		form:      newSubmitForm(),
		waitlist:  newWaitlistForm(),
		actions:   actionGuard{},
		requests:  newRequestTracker(),
		errs:      map[ViewState]error{},
		statusMsg: "Ready",
	}
	m.help.Styles.ShortKey = HelpKeyStyle
	m.help.Styles.ShortDesc = HelpDescStyle
	m.help.Styles.FullKey = HelpKeyStyle
	m.help.Styles.FullDesc = HelpDescStyle
	for _, opt := range opts {
		opt(&m)
	}
	m.updateCatalogTitle()
	return m
}

// Init starts the spinner and loads the catalog
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// requestTracker hands out request ids. It is shared by every copy of a
// Model so ids stay unique across Init and Update.
type requestTracker struct {
	seq     int
	latest  map[ViewState]int
	loading map[ViewState]bool
}

func newRequestTracker() *requestTracker {
	return &requestTracker{latest: map[ViewState]int{}, loading: map[ViewState]bool{}}
}

// beginRequest allocates the request id for view v; responses carrying any
// older id for v are dropped.
func (m *Model) beginRequest(v ViewState) int {
	r := m.requests
	r.seq++
	r.latest[v] = r.seq
	r.loading[v] = true
	delete(m.errs, v)
	return r.seq
}

// accept reports whether a response is the latest for v and clears the
// loading flag if so.
func (m *Model) accept(v ViewState, requestID int, err error) bool {
	r := m.requests
	if r.latest[v] != requestID {
		m.log.Debug().Int("request_id", requestID).Int("latest", r.latest[v]).Msg("dropping stale response")
		return false
	}
	r.loading[v] = false
	if err != nil {
		m.errs[v] = err
		m.log.Warn().Err(err).Int("view", int(v)).Msg("load failed")
	}
	return true
}

func (m Model) isLoading(v ViewState) bool {
	return m.requests.loading[v]
}

func (m *Model) loadCatalog() tea.Cmd {
	id := m.beginRequest(CatalogView)
	q := types.AgentQuery{Category: m.filter.Category, Sort: m.sort.String(), Search: m.filter.Search}
	return fetchAgents(m.source, m.timeout, q, id)
}

func (m *Model) loadBundles() tea.Cmd {
	return fetchBundles(m.source, m.timeout, m.beginRequest(BundlesView))
}

func (m *Model) loadOwned() tea.Cmd {
	return fetchOwnedAgents(m.source, m.timeout, m.session.UserID, m.beginRequest(DashboardView))
}

func (m *Model) loadDevOverview() tea.Cmd {
	if m.session.DeveloperName == "" {
		m.errs[DevPortalView] = errNoDeveloper
		return nil
	}
	return fetchDevOverview(m.source, m.timeout, m.session.DeveloperName, m.beginRequest(DevPortalView))
}

type cacheClearer interface {
	ClearCache()
}

// dropCache makes the next load go to the network when the source keeps a
// response cache.
func (m *Model) dropCache() {
	if c, ok := m.source.(cacheClearer); ok {
		c.ClearCache()
	}
}

func (m *Model) openAgent(slug string) tea.Cmd {
	m.back = m.state
	m.state = AgentDetailView
	m.detail = nil
	m.setStatus("Ready", false)
	m.viewport.SetContent("")
	return fetchAgentDetail(m.source, m.timeout, slug, m.beginRequest(AgentDetailView))
}

func (m *Model) openBundle(b types.Bundle) tea.Cmd {
	m.back = m.state
	m.state = BundleDetailView
	m.bundle = &b
	m.setStatus("Ready", false)
	m.renderDetail()
	return fetchBundleDetail(m.source, m.timeout, b.Slug, m.beginRequest(BundleDetailView))
}

// refreshCatalog re-derives the visible list from the last fetched
// listings and the current filter and sort.
func (m *Model) refreshCatalog() {
	visible := catalog.Query(m.listings, m.filter, m.sort)
	if m.featuredOnly {
		visible = catalog.Featured(visible)
	}
	m.agents.SetItems(agentItems(visible))
	m.updateCatalogTitle()
}

func (m *Model) updateCatalogTitle() {
	title := "Agents · " + catalog.CategoryLabel(m.filter.Category) + " · " + m.sort.Label()
	if m.featuredOnly {
		title += " · Featured"
	}
	m.agents.Title = title
}

// openAction returns the action key of the detail page on screen, or "".
func (m Model) openAction() string {
	switch {
	case m.state == AgentDetailView && m.detail != nil:
		return agentAction(m.detail.Listing.ID)
	case m.state == BundleDetailView && m.bundle != nil:
		return bundleAction(m.bundle.ID)
	}
	return ""
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

func (m *Model) switchTo(v ViewState) tea.Cmd {
	m.state = v
	m.help.ShowAll = false
	switch v {
	case CatalogView:
		if len(m.listings) == 0 && !m.isLoading(CatalogView) {
			return m.loadCatalog()
		}
	case BundlesView:
		return m.loadBundles()
	case DashboardView:
		return m.loadOwned()
	case DevPortalView:
		return m.loadDevOverview()
	case WaitlistView:
		if !m.waitlist.focusGoals {
			return m.waitlist.email.Focus()
		}
	}
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		m.renderDetail()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case agentsMsg:
		if !m.accept(CatalogView, msg.requestID, msg.err) {
			return m, nil
		}
		m.listings = msg.listings
		m.refreshCatalog()
		return m, nil

	case agentDetailMsg:
		if !m.accept(AgentDetailView, msg.requestID, msg.err) {
			return m, nil
		}
		if msg.err == nil {
			m.detail = &msg.detail
		}
		m.renderDetail()
		m.viewport.GotoTop()
		return m, nil

	case bundlesMsg:
		if !m.accept(BundlesView, msg.requestID, msg.err) {
			return m, nil
		}
		m.bundles.SetItems(bundleItems(msg.bundles))
		return m, nil

	case bundleDetailMsg:
		if !m.accept(BundleDetailView, msg.requestID, msg.err) {
			return m, nil
		}
		if msg.err == nil {
			m.bundle = &msg.bundle
		}
		m.renderDetail()
		return m, nil

	case ownedAgentsMsg:
		if !m.accept(DashboardView, msg.requestID, msg.err) {
			return m, nil
		}
		m.owned.SetItems(agentItems(msg.listings))
		return m, nil

	case devOverviewMsg:
		if !m.accept(DevPortalView, msg.requestID, msg.err) {
			return m, nil
		}
		if msg.err != nil {
			m.overview = nil
			m.devAgents.SetItems(nil)
			return m, nil
		}
		m.overview = &msg.overview
		m.devAgents.SetItems(agentItems(msg.overview.Agents))
		return m, nil

	case actionResultMsg:
		return m.handleActionResult(msg)

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus("Could not copy to clipboard", true)
		} else {
			m.setStatus("Demo URL copied", false)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleActionResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	m.actions.finish(msg.key, msg.err)
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("action", msg.key).Msg("action failed")
	}

	var cmd tea.Cmd
	switch msg.key {
	case submitAction:
		if msg.err != nil {
			m.form.err = errors.New("submission failed, please try again")
			break
		}
		m.setStatus(firstNonEmpty(msg.message, "Agent submitted"), false)
		cmd = m.loadDevOverview()
	case waitlistAction:
		if msg.err != nil {
			m.waitlist.err = errors.New("could not join the waitlist, please try again")
			break
		}
		m.setStatus(firstNonEmpty(msg.message, "You're on the list"), false)
	default:
		// other pages show the outcome through their own button only
		if msg.key != m.openAction() {
			break
		}
		if msg.err != nil {
			m.setStatus("Purchase failed, please try again", true)
		} else {
			m.setStatus(firstNonEmpty(msg.message, "Purchase complete"), false)
		}
	}
	m.renderDetail()
	return m, cmd
}

func firstNonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// resizePanes adjusts the dimensions of lists and viewport based on window size
func (m *Model) resizePanes() {
	// Reserve space for tab bar, status bar and help
	chrome := 3
	available := m.height - chrome
	if available < 0 {
		available = 0
	}

	// catalog has an extra filter line
	catalogHeight := available - 1
	if catalogHeight < 0 {
		catalogHeight = 0
	}
	m.agents.SetSize(m.width, catalogHeight)
	m.bundles.SetSize(m.width, available)
	m.owned.SetSize(m.width, available)

	// dev portal shows four stat lines above its list
	devHeight := available - 4
	if devHeight < 0 {
		devHeight = 0
	}
	m.devAgents.SetSize(m.width, devHeight)

	m.viewport.Width = m.width
	m.viewport.Height = available
	m.search.Width = m.width - 4
}
