// Package screen holds the contract between the router and the views it
// stacks. A screen draws only its body; the app adds header and footer.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/surfmath/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body into width x height cells.
	View(width, height int) string

	// Title goes in the header bar.
	Title() string
}

// Screens may also implement any of the following.

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider fills the score and question counter in the header.
type StatusProvider interface {
	Status() layout.HeaderStatus
}

// Resumer is called when the screen is on top again after a pop.
type Resumer interface {
	Resume() tea.Cmd
}
