package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Chrome is the height taken by the header and footer boxes.
	Chrome = 6

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStatus is what the header shows on its right-hand side. A zero
// Total hides the question counter.
type HeaderStatus struct {
	Score    int
	Question int
	Total    int
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether a screen with the given content area should
// drop decorations. The terminal height is the content height plus Chrome.
func IsCompact(width, contentHeight int) bool {
	return width < compactWidth || contentHeight+Chrome < compactHeight
}

// RenderMinSizeMessage asks for a bigger terminal.
func RenderMinSizeMessage(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Flat spell."),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("Surf Math needs at least %d×%d.", MinWidth, MinHeight)),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("This terminal is %d×%d.", width, height)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// RenderHeader draws the app name on the left, the screen title centred
// and the score (plus the wave counter during a set) on the right.
func RenderHeader(title string, status HeaderStatus, width int) string {
	inner := max(width-4, 0)

	right := lipgloss.NewStyle().Foreground(theme.Sand).Render(fmt.Sprintf("★ %d", status.Score))
	if status.Total > 0 {
		right += "   " + lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(fmt.Sprintf("≈ %d/%d", status.Question, status.Total))
	}

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Surf Math")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	return bar(width).Render(spread(left, mid, right, inner))
}

// spread lays out left, mid and right across width with mid centred,
// unless the sides run into it.
func spread(left, mid, right string, width int) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((width-mw)/2-lw, 1)
	gapR := max(width-lw-gapL-mw-rw, 1)
	return left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
}

// RenderFooter draws the key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar(width).Render(strings.Join(parts, sep))
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
