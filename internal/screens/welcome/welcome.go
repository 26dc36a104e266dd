// Package welcome is the splash screen: a sunrise over a moving sea, then
// the title. Any key moves on to the beach.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

const frameInterval = 100 * time.Millisecond

// Frames at which each stage begins.
const (
	sunriseFrame = 5
	titleFrame   = 15
)

type stage int

const (
	stageDawn stage = iota
	stageSunrise
	stageTitle
)

const rider = `     .-~~~-.
   .'  .-.  '.        \o/
  /   /   \   \        |
 |   |  @  |   |      / \
 |    \   /    |   ==========`

const (
	swell    = "~≈~~≈≈~"
	backwash = "-~ -~~ "
	seaWidth = 32
)

type frameMsg time.Time

type WelcomeScreen struct {
	next   func() screen.Screen
	frames int
	left   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns the splash screen. next builds the screen that replaces it
// and is called at most once.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.left {
			return w, nil
		}
		w.frames++
		return w, nextFrame()

	case tea.KeyPressMsg:
		if w.left {
			return w, nil
		}
		w.left = true
		return w, router.Swap(w.next())
	}
	return w, nil
}

func (w *WelcomeScreen) stage() stage {
	switch {
	case w.frames >= titleFrame:
		return stageTitle
	case w.frames >= sunriseFrame:
		return stageSunrise
	}
	return stageDawn
}

// sea renders seaWidth cells of pattern shifted by offset.
func sea(pattern string, offset int) string {
	cells := []rune(pattern)
	n := len(cells)
	var b strings.Builder
	for i := range seaWidth {
		b.WriteRune(cells[((i+offset)%n+n)%n])
	}
	return b.String()
}

func (w *WelcomeScreen) View(width, height int) string {
	var rows []string

	if w.stage() >= stageSunrise {
		sun := lipgloss.NewStyle().Foreground(theme.Sand).Render("☀")
		rows = append(rows, lipgloss.PlaceHorizontal(seaWidth, lipgloss.Right, sun))
	}

	// The swell rolls in while the backwash runs out under it.
	rows = append(rows,
		lipgloss.NewStyle().Foreground(theme.Primary).Render(rider),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(sea(swell, w.frames)),
		lipgloss.NewStyle().Foreground(theme.Border).Render(sea(backwash, -w.frames)),
	)

	if w.stage() == stageTitle {
		rows = append(rows,
			"",
			components.RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Solve the set, ride the wave!"),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to paddle out"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rows...))
}
