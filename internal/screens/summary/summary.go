package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/layout"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

// SummaryScreen displays the end of a session.
type SummaryScreen struct {
	summary quiz.Summary
	menu    components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. replay builds the screen that starts the
// next session; a nil replay hides the option.
func New(sum quiz.Summary, replay func() screen.Screen) *SummaryScreen {
	var items []components.MenuItem
	if replay != nil {
		items = append(items, components.MenuItem{Label: "PADDLE OUT AGAIN", Action: func() tea.Cmd {
			return router.Swap(replay())
		}})
	}
	items = append(items, components.MenuItem{Label: "BACK TO THE BEACH", Action: func() tea.Cmd {
		return router.Back
	}})

	return &SummaryScreen{
		summary: sum,
		menu:    components.NewMenu(items),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) Status() layout.HeaderStatus {
	return layout.HeaderStatus{Score: s.summary.Score}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Beach"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		return s, router.Back
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	cw := components.ContentWidth(width)
	center := func() lipgloss.Style {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(center().
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(center().
		Foreground(theme.Sand).
		Bold(true).
		Render(fmt.Sprintf("%d / %d points", sum.Score, sum.MaxScore)))
	b.WriteString("\n\n")

	stats := fmt.Sprintf("Waves: %d/%d        Ridden: %d        Accuracy: %.0f%%",
		sum.Answered, sum.Total, sum.Correct, sum.Accuracy*100)
	b.WriteString(center().
		Foreground(theme.Text).
		Render(stats))
	b.WriteString("\n\n")

	b.WriteString(center().
		Foreground(theme.Secondary).
		Italic(true).
		Render(sum.Rating()))
	b.WriteString("\n\n")

	var buttons []string
	for i, item := range s.menu.Items {
		buttons = append(buttons, components.MenuButton(item.Label, i == s.menu.Selected, cw))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, buttons...)))

	return b.String()
}
