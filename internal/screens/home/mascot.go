package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // No sessions yet, or an average one
	MascotStoked                        // Last session finished with 80%+
	MascotWipedOut                      // Last session under 50%
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ◡  │
└─┬─┬─┘
~~~~~~~~~`

const mascotStoked = `┌─────┐
│ ★ ★ │ \o/
│  ▽  │
└─┬─┬─┘
~~~~~~~~~`

const mascotWipedOut = `┌─────┐
│ x x │ ~
│  ﹏  │
└─┬─┬─┘
≈≈≈≈≈≈≈≈≈`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotStoked:
		art = mascotStoked
		fg = theme.Sand
	case MascotWipedOut:
		art = mascotWipedOut
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
