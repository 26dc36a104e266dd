// Package theme holds the sea-and-sand palette and the shared styles
// built from it.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#0EA5E9") // ocean
	Secondary = lipgloss.Color("#2DD4BF") // foam
	Accent    = lipgloss.Color("#FB923C") // sunset
	Sand      = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#082F49") // deep water
	BgCard    = lipgloss.Color("#0C4A6E") // open water
	Border    = lipgloss.Color("#1E3A5F") // reef
)

var (
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Equation = lipgloss.NewStyle().Foreground(Sand).Bold(true)

	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)

	// Feedback headlines.
	Correct   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect = lipgloss.NewStyle().Foreground(Error).Bold(true)

	// Swell meter cells.
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)
)
