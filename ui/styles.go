package ui

import "github.com/charmbracelet/lipgloss"

// 16-color ANSI Dracula palette
var (
	DraculaForeground = lipgloss.AdaptiveColor{Light: "255", Dark: "255"}
	DraculaPurple     = lipgloss.AdaptiveColor{Light: "5", Dark: "5"}
	DraculaPink       = lipgloss.AdaptiveColor{Light: "13", Dark: "13"}
	DraculaCyan       = lipgloss.AdaptiveColor{Light: "14", Dark: "14"}
	DraculaGreen      = lipgloss.AdaptiveColor{Light: "10", Dark: "10"}
	DraculaComment    = lipgloss.AdaptiveColor{Light: "7", Dark: "7"}
	DraculaOrange     = lipgloss.AdaptiveColor{Light: "3", Dark: "3"}
	DraculaRed        = lipgloss.AdaptiveColor{Light: "1", Dark: "1"}

	// Tab bar styles
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 1)

	// List styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true).
			Padding(0, 1)

	// Filter bar
	FilterLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaComment)
	FilterValueStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Bold(true)

	// Detail view styles
	DetailTitleStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true)
	DetailTaglineStyle = lipgloss.NewStyle().
				Foreground(DraculaCyan).
				Italic(true)
	SectionStyle = lipgloss.NewStyle().
			Foreground(DraculaPurple).
			Bold(true).
			MarginTop(1)
	MutedStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)

	// Prices
	PriceStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Bold(true)
	OriginalPriceStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Strikethrough(true)
	DiscountStyle = lipgloss.NewStyle().
			Foreground(DraculaOrange).
			Bold(true)
	StarStyle = lipgloss.NewStyle().
			Foreground(DraculaOrange)

	// Action buttons
	ButtonStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground).
			Background(DraculaPurple).
			Padding(0, 2)
	ButtonPendingStyle = lipgloss.NewStyle().
				Foreground(DraculaComment).
				Padding(0, 2)
	ButtonDoneStyle = lipgloss.NewStyle().
			Foreground(DraculaGreen).
			Bold(true).
			Padding(0, 2)

	// Forms
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(DraculaComment).
			Width(14)
	FocusedFieldLabelStyle = lipgloss.NewStyle().
				Foreground(DraculaPink).
				Bold(true).
				Width(14)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(DraculaComment)
	ErrorStyle = lipgloss.NewStyle().
			Foreground(DraculaRed)

	// Help
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(DraculaPink).
			Bold(true)
	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DraculaForeground)
)
