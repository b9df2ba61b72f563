package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentbazaar/bazaar/api"
	"github.com/agentbazaar/bazaar/types"
)

type fakeSource struct {
	mu sync.Mutex

	listings     []types.Listing
	bundles      []types.Bundle
	overview     api.DeveloperOverview
	purchaseErrs map[string]error
	submitErr    error

	agentQueries []types.AgentQuery
	purchases    []string
	submissions  []types.Submission
	waitlist     []types.WaitlistEntry
	userIDs      []string
}

var _ types.MarketplaceSource = (*fakeSource)(nil)

func (f *fakeSource) ListAgents(_ context.Context, q types.AgentQuery) ([]types.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.agentQueries = append(f.agentQueries, q)
	var out []types.Listing
	for _, l := range f.listings {
		if q.Category == "" || l.Category == q.Category {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeSource) GetAgent(_ context.Context, slug string) (types.Listing, error) {
	for _, l := range f.listings {
		if l.Slug == slug {
			return l, nil
		}
	}
	return types.Listing{}, &api.StatusError{Op: "get agent", Status: 404, Text: "Not Found"}
}

func (f *fakeSource) ListBundles(context.Context) ([]types.Bundle, error) {
	return f.bundles, nil
}

func (f *fakeSource) GetBundle(_ context.Context, slug string) (types.Bundle, error) {
	for _, b := range f.bundles {
		if b.Slug == slug {
			return b, nil
		}
	}
	return types.Bundle{}, api.ErrNotFound
}

func (f *fakeSource) ListReviews(context.Context, string) ([]types.Review, error) {
	return []types.Review{{ID: "r1", UserName: "Ada", Rating: 5, Comment: "Great"}}, nil
}

func (f *fakeSource) PurchaseAgent(_ context.Context, agentID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases = append(f.purchases, "agent:"+agentID)
	if err := f.purchaseErrs[agentID]; err != nil {
		return "", err
	}
	return "Agent purchased", nil
}

func (f *fakeSource) PurchaseBundle(_ context.Context, bundleID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purchases = append(f.purchases, "bundle:"+bundleID)
	return "Bundle purchased", nil
}

func (f *fakeSource) GetUserAgents(_ context.Context, userID string) ([]types.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userIDs = append(f.userIDs, userID)
	return f.listings[:1], nil
}

func (f *fakeSource) GetDevStats(context.Context, string) (types.DevStats, error) {
	return f.overview.Stats, nil
}

func (f *fakeSource) GetDevAgents(context.Context, string) ([]types.Listing, error) {
	return f.overview.Agents, nil
}

func (f *fakeSource) SubmitAgent(_ context.Context, s types.Submission) (types.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, s)
	if f.submitErr != nil {
		return types.SubmitResult{}, f.submitErr
	}
	return types.SubmitResult{Message: "Agent submitted for review"}, nil
}

func (f *fakeSource) JoinWaitlist(_ context.Context, e types.WaitlistEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waitlist = append(f.waitlist, e)
	return "You're on the list!", nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		listings: []types.Listing{
			{ID: "a1", Slug: "inbox-zero", Name: "Inbox Zero", Category: types.Productivity, Price: 49, OriginalPrice: 79, SalesCount: 50},
			{ID: "a2", Slug: "ad-writer", Name: "Ad Writer", Category: types.Marketing, Price: 19, SalesCount: 10},
			{ID: "a3", Slug: "budget-bot", Name: "Budget Bot", Category: types.Finance, Price: 0, SalesCount: 5},
		},
		bundles: []types.Bundle{
			{ID: "b1", Slug: "starter", Name: "Starter Pack", Price: 99, OriginalPrice: 150},
		},
		overview: api.DeveloperOverview{
			Stats:  types.DevStats{DeveloperName: "Ada", TotalRevenue: 1000, TotalSales: 20, AvgRating: 4.5, AgentCount: 1},
			Agents: []types.Listing{{ID: "a1", Slug: "inbox-zero", Name: "Inbox Zero"}},
		},
		purchaseErrs: map[string]error{},
	}
}

func newTestModel(src *fakeSource) Model {
	m := NewModel(src, types.Session{UserID: "user-1", DeveloperName: "Ada"}, WithTimeout(time.Second))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func loadedModel(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := newTestModel(src)
	cmd := m.loadCatalog()
	return run(t, m, cmd)
}

func openDetail(t *testing.T, m Model, slug string) Model {
	t.Helper()
	cmd := m.openAgent(slug)
	m = run(t, m, cmd)
	if m.detail == nil || m.detail.Listing.Slug != slug {
		t.Fatalf("detail for %q not loaded", slug)
	}
	return m
}

func visibleNames(m Model) []string {
	var names []string
	for _, it := range m.agents.Items() {
		names = append(names, it.(agentItem).listing.Name)
	}
	return names
}

func TestCatalogLoadsSortedByPopularity(t *testing.T) {
	m := loadedModel(t, newFakeSource())

	got := visibleNames(m)
	want := []string{"Inbox Zero", "Ad Writer", "Budget Bot"}
	if len(got) != len(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visible = %v, want %v", got, want)
		}
	}
}

func TestSortKeyReordersAndRequeries(t *testing.T) {
	src := newFakeSource()
	m := loadedModel(t, src)

	m, _ = press(t, m, "s") // rating
	m, cmd := press(t, m, "s")
	m = run(t, m, cmd)

	if got := visibleNames(m)[0]; got != "Budget Bot" {
		t.Errorf("first under price-low = %q, want Budget Bot", got)
	}
	last := src.agentQueries[len(src.agentQueries)-1]
	if last.Sort != "price-low" {
		t.Errorf("last query sort = %q, want price-low", last.Sort)
	}
}

func TestStaleCatalogResponseIsDropped(t *testing.T) {
	m := loadedModel(t, newFakeSource())

	m, first := press(t, m, "tab")  // productivity
	m, second := press(t, m, "tab") // marketing

	newer := second()
	older := first()

	next, _ := m.Update(newer)
	m = next.(Model)
	next, _ = m.Update(older)
	m = next.(Model)

	got := visibleNames(m)
	if len(got) != 1 || got[0] != "Ad Writer" {
		t.Fatalf("visible = %v, want [Ad Writer]", got)
	}
	if m.filter.Category != types.Marketing {
		t.Errorf("category = %q, want marketing", m.filter.Category)
	}
	for _, l := range m.listings {
		if l.Category != types.Marketing {
			t.Errorf("stale listing %q applied", l.Name)
		}
	}
}

func TestStaleDetailResponseIsDropped(t *testing.T) {
	m := loadedModel(t, newFakeSource())

	first := m.openAgent("inbox-zero")
	m, _ = press(t, m, "esc")
	second := m.openAgent("ad-writer")

	next, _ := m.Update(second())
	m = next.(Model)
	next, _ = m.Update(first())
	m = next.(Model)

	if m.detail == nil || m.detail.Listing.Slug != "ad-writer" {
		t.Fatalf("detail = %+v, want ad-writer", m.detail)
	}
}

func TestSearchFiltersLocallyThenQueriesOnEnter(t *testing.T) {
	src := newFakeSource()
	m := loadedModel(t, src)
	queries := len(src.agentQueries)

	m, _ = press(t, m, "/")
	m = typeText(t, m, "budget")
	if got := visibleNames(m); len(got) != 1 || got[0] != "Budget Bot" {
		t.Fatalf("visible while typing = %v", got)
	}
	if len(src.agentQueries) != queries {
		t.Fatal("typing must not query the server")
	}

	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)
	if m.searching {
		t.Error("search still focused after enter")
	}
	if last := src.agentQueries[len(src.agentQueries)-1]; last.Search != "budget" {
		t.Errorf("query search = %q, want budget", last.Search)
	}
}

func TestDetailNotFound(t *testing.T) {
	m := loadedModel(t, newFakeSource())
	cmd := m.openAgent("missing")
	m = run(t, m, cmd)

	if m.detail != nil {
		t.Fatal("detail set for missing agent")
	}
	if got := m.renderBody(); !strings.Contains(got, "Agent not found.") {
		t.Errorf("body = %q, want not found message", got)
	}
}

func TestBuyAgentDoublePressIssuesOneRequest(t *testing.T) {
	src := newFakeSource()
	m := openDetail(t, loadedModel(t, src), "inbox-zero")

	m, cmd := press(t, m, "b")
	if cmd == nil {
		t.Fatal("first press issued no request")
	}
	m, again := press(t, m, "b")
	if again != nil {
		t.Fatal("second press while pending issued a request")
	}
	if got := m.actions.state(agentAction("a1")); got != actionPending {
		t.Fatalf("state = %v, want pending", got)
	}

	m = run(t, m, cmd)
	if len(src.purchases) != 1 {
		t.Fatalf("purchases = %v, want exactly one", src.purchases)
	}
	if got := m.actions.state(agentAction("a1")); got != actionSucceeded {
		t.Fatalf("state = %v, want succeeded", got)
	}
	if _, cmd := press(t, m, "b"); cmd != nil {
		t.Fatal("press after success issued a request")
	}
	if m.statusMsg != "Agent purchased" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestBuyAgentFailureOnlyAffectsThatListing(t *testing.T) {
	src := newFakeSource()
	src.purchaseErrs["a1"] = errors.New("boom")
	m := openDetail(t, loadedModel(t, src), "inbox-zero")

	m, cmd := press(t, m, "b")
	m = run(t, m, cmd)

	if got := m.actions.state(agentAction("a1")); got != actionFailed {
		t.Fatalf("a1 state = %v, want failed", got)
	}
	if got := m.actions.state(agentAction("a2")); got != actionIdle {
		t.Fatalf("a2 state = %v, want idle", got)
	}
	if !m.statusErr {
		t.Error("failure not shown in status bar")
	}

	// manual retry is allowed
	delete(src.purchaseErrs, "a1")
	m, retry := press(t, m, "b")
	if retry == nil {
		t.Fatal("retry after failure issued no request")
	}
	m = run(t, m, retry)
	if got := m.actions.state(agentAction("a1")); got != actionSucceeded {
		t.Fatalf("a1 state after retry = %v, want succeeded", got)
	}

	// the other listing is independently purchasable
	m, _ = press(t, m, "esc")
	m = openDetail(t, m, "ad-writer")
	if _, cmd := press(t, m, "b"); cmd == nil {
		t.Fatal("purchase of a2 blocked by a1")
	}
}

func TestPurchaseStatusStaysOnItsListing(t *testing.T) {
	src := newFakeSource()
	src.purchaseErrs["a1"] = errors.New("boom")
	m := openDetail(t, loadedModel(t, src), "inbox-zero")

	m, cmd := press(t, m, "b")
	m = run(t, m, cmd)
	if !m.statusErr {
		t.Fatal("failure not shown on the failing listing")
	}

	m, _ = press(t, m, "esc")
	m = openDetail(t, m, "ad-writer")
	if m.statusErr || strings.Contains(m.View(), "failed") {
		t.Fatalf("a1 failure shown on a2: status=%q\n%s", m.statusMsg, m.View())
	}

	// a result that lands while another listing is open stays off its page
	m, _ = press(t, m, "esc")
	m = openDetail(t, m, "inbox-zero")
	m, cmd = press(t, m, "b")
	if cmd == nil {
		t.Fatal("retry issued no request")
	}
	m, _ = press(t, m, "esc")
	m = openDetail(t, m, "ad-writer")
	if strings.Contains(m.View(), "Processing") {
		t.Fatalf("a1 pending shown on a2:\n%s", m.View())
	}
	m = run(t, m, cmd)
	if m.statusErr || strings.Contains(m.View(), "failed") {
		t.Fatalf("late a1 failure shown on a2: status=%q\n%s", m.statusMsg, m.View())
	}
	if got := m.actions.state(agentAction("a1")); got != actionFailed {
		t.Fatalf("a1 state = %v, want failed", got)
	}
}

func TestFeaturedToggle(t *testing.T) {
	src := newFakeSource()
	src.listings[1].Featured = true
	m := loadedModel(t, src)

	m, cmd := press(t, m, "f")
	if cmd != nil {
		t.Fatal("featured toggle should filter locally")
	}
	if got := visibleNames(m); len(got) != 1 || got[0] != "Ad Writer" {
		t.Fatalf("visible = %v, want [Ad Writer]", got)
	}
	if !strings.Contains(m.View(), "featured only") {
		t.Errorf("filter bar does not show the featured filter:\n%s", m.View())
	}

	m, _ = press(t, m, "f")
	if got := visibleNames(m); len(got) != 3 {
		t.Fatalf("visible after second toggle = %v, want all three", got)
	}
}

func TestHelpUsesThemeStyles(t *testing.T) {
	m := newTestModel(newFakeSource())
	st := m.help.Styles
	if st.ShortKey.GetForeground() != HelpKeyStyle.GetForeground() || st.FullKey.GetForeground() != HelpKeyStyle.GetForeground() {
		t.Error("help keys do not use HelpKeyStyle")
	}
	if st.ShortDesc.GetForeground() != HelpDescStyle.GetForeground() || st.FullDesc.GetForeground() != HelpDescStyle.GetForeground() {
		t.Error("help descriptions do not use HelpDescStyle")
	}
}

func TestBuyBundle(t *testing.T) {
	src := newFakeSource()
	m := newTestModel(src)

	m, cmd := press(t, m, "2")
	m = run(t, m, cmd)
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)
	if m.state != BundleDetailView || m.bundle == nil {
		t.Fatalf("state = %v, bundle = %v", m.state, m.bundle)
	}

	m, cmd = press(t, m, "b")
	m, again := press(t, m, "b")
	if again != nil {
		t.Fatal("double press issued two requests")
	}
	m = run(t, m, cmd)
	if len(src.purchases) != 1 || src.purchases[0] != "bundle:b1" {
		t.Fatalf("purchases = %v", src.purchases)
	}
	if m.actions.state(bundleAction("b1")) != actionSucceeded {
		t.Fatal("bundle purchase not marked succeeded")
	}
}

func TestDashboardUsesSessionUser(t *testing.T) {
	src := newFakeSource()
	m := newTestModel(src)

	m, cmd := press(t, m, "3")
	m = run(t, m, cmd)

	if len(src.userIDs) != 1 || src.userIDs[0] != "user-1" {
		t.Fatalf("user ids = %v", src.userIDs)
	}
	if len(m.owned.Items()) != 1 {
		t.Fatalf("owned = %d items", len(m.owned.Items()))
	}
}

func TestDevPortalWithoutDeveloperName(t *testing.T) {
	m := NewModel(newFakeSource(), types.Session{UserID: "u"})
	m, cmd := press(t, m, "4")
	if cmd != nil {
		t.Fatal("dev portal issued a request without a developer name")
	}
	if !errors.Is(m.errs[DevPortalView], errNoDeveloper) {
		t.Fatalf("err = %v", m.errs[DevPortalView])
	}
}

func openSubmitForm(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := newTestModel(src)
	m, cmd := press(t, m, "4")
	m = run(t, m, cmd)
	if m.overview == nil || m.overview.Stats.DeveloperName != "Ada" {
		t.Fatalf("overview = %+v", m.overview)
	}
	m, _ = press(t, m, "n")
	if m.state != SubmitView {
		t.Fatalf("state = %v, want submit", m.state)
	}
	return m
}

func fillForm(t *testing.T, m Model, values ...string) Model {
	t.Helper()
	for i, v := range values {
		m = typeText(t, m, v)
		if i < len(values)-1 {
			m, _ = press(t, m, "tab")
		}
	}
	return m
}

func TestSubmitEmptyFormIssuesNoRequest(t *testing.T) {
	src := newFakeSource()
	m := openSubmitForm(t, src)

	m, cmd := press(t, m, "ctrl+s")
	if cmd != nil {
		t.Fatal("empty form issued a request")
	}
	if m.form.err == nil {
		t.Fatal("no validation message")
	}
	if len(src.submissions) != 0 {
		t.Fatalf("submissions = %d", len(src.submissions))
	}
}

func TestSubmitValidFormOnce(t *testing.T) {
	src := newFakeSource()
	m := openSubmitForm(t, src)
	m = fillForm(t, m, "Email Outreach", "mark", "Writes cold emails", "29", "mon", "https://demo.example.com", "tele")
	m, _ = press(t, m, "ctrl+t")

	m, cmd := press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatalf("valid form issued no request: %v", m.form.err)
	}
	m, again := press(t, m, "ctrl+s")
	if again != nil {
		t.Fatal("second submit while pending issued a request")
	}

	m = run(t, m, cmd)
	if len(src.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(src.submissions))
	}
	got := src.submissions[0]
	if got.Category != types.Marketing || got.PriceType != types.Monthly || got.InstallType != types.InstallTelegram {
		t.Errorf("fuzzy matches = %q %q %q", got.Category, got.PriceType, got.InstallType)
	}
	if got.Price != 29 || !got.AtlasCompatible {
		t.Errorf("submission = %+v", got)
	}
	if m.actions.state(submitAction) != actionSucceeded {
		t.Fatal("submit not marked succeeded")
	}
	if m.statusMsg != "Agent submitted for review" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	src := newFakeSource()
	src.submitErr = errors.New("server down")
	m := openSubmitForm(t, src)
	m = fillForm(t, m, "Budget", "finance", "Tracks spend", "0")

	m, cmd := press(t, m, "ctrl+s")
	m = run(t, m, cmd)
	if m.actions.state(submitAction) != actionFailed || m.form.err == nil {
		t.Fatalf("state = %v err = %v", m.actions.state(submitAction), m.form.err)
	}

	src.submitErr = nil
	_, retry := press(t, m, "ctrl+s")
	if retry == nil {
		t.Fatal("retry issued no request")
	}
	if p := src.submissions[0]; p.PriceType != types.Free {
		t.Errorf("price type for zero price = %q, want free", p.PriceType)
	}
}

func TestWaitlist(t *testing.T) {
	src := newFakeSource()
	m := newTestModel(src)
	m, _ = press(t, m, "5")

	m, cmd := press(t, m, "enter")
	if cmd != nil || m.waitlist.err == nil {
		t.Fatal("empty email issued a request")
	}

	m = typeText(t, m, "ada@example.com")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, " ")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, " ")

	m, cmd = press(t, m, "enter")
	m, again := press(t, m, "enter")
	if again != nil {
		t.Fatal("second join while pending issued a request")
	}
	m = run(t, m, cmd)

	if len(src.waitlist) != 1 {
		t.Fatalf("waitlist posts = %d", len(src.waitlist))
	}
	e := src.waitlist[0]
	if e.Email != "ada@example.com" || len(e.Goals) != 2 || e.Goals[0] != "fitness" || e.Goals[1] != "content" {
		t.Errorf("entry = %+v", e)
	}
	if m.actions.state(waitlistAction) != actionSucceeded {
		t.Fatal("waitlist not marked succeeded")
	}
}

func TestMatchChoice(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"finance", "finance"},
		{"Finance", "finance"},
		{"dev", "dev-tools"},
		{"prod", "productivity"},
		{"ecom", "ecommerce"},
		{"zzz", "zzz"},
	}
	for _, tt := range tests {
		if got := matchChoice(tt.input, categoryChoices()); got != tt.want {
			t.Errorf("matchChoice(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestViewRendersEachState(t *testing.T) {
	m := loadedModel(t, newFakeSource())
	for _, k := range []string{"1", "2", "3", "4", "5"} {
		next, _ := press(t, m, k)
		if next.View() == "" {
			t.Errorf("empty view after %q", k)
		}
	}
}
