package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for every card on a
// board so their edges line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the board border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// BoardFrame centers content inside a double border filling width x height.
func BoardFrame(content string, width, height int) string {
	if width < 4 || height < 4 {
		return content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded border of the given color at content
// width cw.
func Card(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 2).
		Render(content)
}

// MenuButton renders one menu entry as a full-width pill.
func MenuButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Sand).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Sand).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
