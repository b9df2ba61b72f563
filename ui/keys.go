package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Search    key.Binding
	Enter     key.Binding
	Back      key.Binding
	Category  key.Binding
	Sort      key.Binding
	Featured  key.Binding
	Catalog   key.Binding
	Bundles   key.Binding
	Dashboard key.Binding
	DevPortal key.Binding
	Waitlist  key.Binding
	Buy       key.Binding
	Copy      key.Binding
	New       key.Binding
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Atlas     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Category:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	Featured:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "featured")),
	Catalog:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "agents")),
	Bundles:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "bundles")),
	Dashboard: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "my agents")),
	DevPortal: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "developers")),
	Waitlist:  key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "atlas")),
	Buy:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
	Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy demo")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "submit agent")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle goal")),
	Atlas:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "atlas compatible")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.Enter, k.Back, k.Category, k.Sort, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Enter, k.Back},
		{k.Category, k.Sort, k.Featured, k.Refresh},
		{k.Catalog, k.Bundles, k.Dashboard, k.DevPortal, k.Waitlist},
		{k.Buy, k.Copy, k.New, k.Submit},
		{k.Help, k.Quit},
	}
}

// viewKeys is the help.KeyMap for a single view.
type viewKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (v viewKeys) ShortHelp() []key.Binding { return v.short }
func (v viewKeys) FullHelp() [][]key.Binding { return v.full }

func (k keyMap) forView(state ViewState) viewKeys {
	tabs := []key.Binding{k.Catalog, k.Bundles, k.Dashboard, k.DevPortal, k.Waitlist}
	var short []key.Binding
	switch state {
	case CatalogView:
		return viewKeys{short: k.ShortHelp(), full: k.FullHelp()}
	case AgentDetailView:
		short = []key.Binding{k.Up, k.Buy, k.Copy, k.Back, k.Quit}
	case BundlesView, DashboardView:
		short = []key.Binding{k.Up, k.Enter, k.Refresh, k.Quit}
	case BundleDetailView:
		short = []key.Binding{k.Up, k.Buy, k.Back, k.Quit}
	case DevPortalView:
		short = []key.Binding{k.Up, k.Enter, k.New, k.Refresh, k.Quit}
	case SubmitView:
		short = []key.Binding{k.NextField, k.PrevField, k.Atlas, k.Submit, k.Back}
		return viewKeys{short: short, full: [][]key.Binding{short}}
	case WaitlistView:
		short = []key.Binding{k.NextField, k.Up, k.Toggle, k.Submit}
	}
	return viewKeys{short: short, full: [][]key.Binding{short, tabs, {k.Help, k.Quit}}}
}
