package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

const (
	swellGlyph = "≈"
	flatGlyph  = "·"
)

// SwellMeter draws set progress as a line of water: ridden waves on the
// left, flat water for what is left, then "done/total".
type SwellMeter struct {
	Label string
	Done  int
	Total int
	Width int
}

func (m SwellMeter) View() string {
	var head string
	if m.Label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	tail := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", m.Done, m.Total))

	cells := max(m.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	ridden := 0
	if m.Total > 0 {
		ridden = min(max(cells*m.Done/m.Total, 0), cells)
	}

	return head +
		theme.ProgressFilled.Render(strings.Repeat(swellGlyph, ridden)) +
		theme.ProgressEmpty.Render(strings.Repeat(flatGlyph, cells-ridden)) +
		tail
}
