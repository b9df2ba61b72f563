package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/agentbazaar/bazaar/types"
)

const (
	fieldName = iota
	fieldCategory
	fieldDescription
	fieldPrice
	fieldPriceType
	fieldDemoURL
	fieldInstallType
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Agent Name", "Category", "Description", "Price (USD)", "Pricing", "Demo URL", "Install",
}

var (
	priceTypeChoices   = []string{string(types.Lifetime), string(types.Monthly), string(types.Free)}
	installTypeChoices = []string{
		string(types.InstallAPI), string(types.InstallTelegram), string(types.InstallZapier),
		string(types.InstallNoCode), string(types.InstallCustom),
	}
)

// submitForm is the developer portal's new-listing form.
type submitForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	atlas  bool
	err    error
}

func newSubmitForm() submitForm {
	placeholders := [fieldCount]string{
		"e.g., Email Outreach Agent",
		strings.Join(categoryChoices(), " | "),
		"What does your agent do?",
		"49",
		strings.Join(priceTypeChoices, " | "),
		"https://t.me/YourDemoBot",
		strings.Join(installTypeChoices, " | "),
	}
	var f submitForm
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[fieldDescription].CharLimit = 500
	f.inputs[fieldName].Focus()
	return f
}

func (f *submitForm) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *submitForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f submitForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// draft turns the form into a Submission and validates it. Free-text
// category, pricing and install inputs are matched against the known
// values, so "dev" selects dev-tools.
func (f submitForm) draft() (types.Submission, error) {
	rawPrice := f.value(fieldPrice)
	if rawPrice == "" {
		return types.Submission{}, errors.New("price is required")
	}
	price, err := strconv.ParseFloat(strings.TrimPrefix(rawPrice, "$"), 64)
	if err != nil {
		return types.Submission{}, fmt.Errorf("price must be a number, got %q", rawPrice)
	}

	priceType := matchChoice(f.value(fieldPriceType), priceTypeChoices)
	if priceType == "" {
		priceType = string(types.Lifetime)
		if price == 0 {
			priceType = string(types.Free)
		}
	}

	s := types.Submission{
		Name:            f.value(fieldName),
		Category:        types.Category(matchChoice(f.value(fieldCategory), categoryChoices())),
		Description:     f.value(fieldDescription),
		Price:           price,
		PriceType:       types.PriceType(priceType),
		DemoURL:         f.value(fieldDemoURL),
		InstallType:     types.InstallType(matchChoice(f.value(fieldInstallType), installTypeChoices)),
		AtlasCompatible: f.atlas,
	}
	return s, s.Validate()
}

func categoryChoices() []string {
	out := make([]string, len(types.AllCategories))
	for i, c := range types.AllCategories {
		out[i] = string(c)
	}
	return out
}

// matchChoice resolves input to one of choices: exact (case-insensitive)
// first, then the best fuzzy match. Unmatched input is returned as typed so
// validation can report it.
func matchChoice(input string, choices []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	for _, c := range choices {
		if c == input {
			return c
		}
	}
	if matches := fuzzy.Find(input, choices); len(matches) > 0 {
		return matches[0].Str
	}
	return input
}

// waitlistForm is the Atlas waitlist signup.
type waitlistForm struct {
	email      textinput.Model
	selected   []bool
	cursor     int
	focusGoals bool
	err        error
}

func newWaitlistForm() waitlistForm {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "you@example.com"
	in.CharLimit = 254
	in.Focus()
	return waitlistForm{
		email:    in,
		selected: make([]bool, len(types.WaitlistGoals)),
	}
}

func (f *waitlistForm) switchFocus() tea.Cmd {
	f.focusGoals = !f.focusGoals
	if f.focusGoals {
		f.email.Blur()
		return nil
	}
	return f.email.Focus()
}

func (f *waitlistForm) moveCursor(delta int) {
	n := len(types.WaitlistGoals)
	f.cursor = (f.cursor + delta + n) % n
}

func (f *waitlistForm) toggle() {
	f.selected[f.cursor] = !f.selected[f.cursor]
}

func (f waitlistForm) entry() (types.WaitlistEntry, error) {
	goals := []string{}
	for i, g := range types.WaitlistGoals {
		if f.selected[i] {
			goals = append(goals, g.Value)
		}
	}
	e := types.WaitlistEntry{Email: strings.TrimSpace(f.email.Value()), Goals: goals}
	return e, e.Validate()
}
