package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/screens/history"
	sessionscreen "github.com/abhisek/surfmath/internal/screens/session"
	"github.com/abhisek/surfmath/internal/store"
	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/layout"
)

// statsWindow is how many recent sessions feed the stats bar.
const statsWindow = 100

// Options wires the home screen to the rest of the app.
type Options struct {
	Engine *quiz.Engine

	// Repo may be nil, which hides the session log.
	Repo store.EventRepo

	// Offline means questions come from the built-in generator.
	Offline bool
}

type statsLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

// stats is what the home screen knows about past sessions.
type stats struct {
	sessions int
	best     int
	last     *store.SessionSummary
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts       Options
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	menuLabels := []string{"PADDLE OUT", "SESSION LOG", "HEAD HOME"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return router.Go(sessionscreen.New(opts.Engine))
		}},
		{Label: menuLabels[1], Disabled: opts.Repo == nil, Action: func() tea.Cmd {
			return router.Go(history.New(opts.Repo))
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		opts:       opts,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats after a session or the log is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.Repo
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), statsWindow)
		return statsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		// A failed load keeps whatever was shown before.
		if msg.Err == nil {
			h.stats = computeStats(msg.Sessions)
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	// 1. Title
	sections = append(sections, renderTitle(cw, compact))

	// 2. Mascot (full mode only)
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(h.stats.last), cw))
	}

	// 3. Stats bar
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if h.opts.Offline {
		sections = append(sections, renderOfflineBanner(cw))
	}

	// 4. Menu
	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		disabled[i] = item.Disabled
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw, disabled))
	}

	content := strings.Join(sections, "\n\n")

	return components.BoardFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Beach"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	sel := h.menu.Keys.Select.Help()
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: sel.Key, Description: sel.Desc},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// computeStats folds recent sessions, newest first, into the stats bar.
func computeStats(sessions []store.SessionSummary) stats {
	st := stats{sessions: len(sessions)}
	for i := range sessions {
		if sessions[i].Score > st.best {
			st.best = sessions[i].Score
		}
	}
	if len(sessions) > 0 {
		last := sessions[0]
		st.last = &last
	}
	return st
}

// mascotFor picks the mascot mood from the last session.
func mascotFor(last *store.SessionSummary) MascotVariant {
	if last == nil || last.QuestionsServed == 0 {
		return MascotIdle
	}
	acc := float64(last.CorrectAnswers) / float64(last.QuestionsServed)
	switch {
	case last.Completed && acc >= 0.8:
		return MascotStoked
	case acc < 0.5:
		return MascotWipedOut
	}
	return MascotIdle
}
