package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/screens/home"
	"github.com/abhisek/surfmath/internal/screens/welcome"
	"github.com/abhisek/surfmath/internal/store"
	"github.com/abhisek/surfmath/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Engine    *quiz.Engine
	EventRepo store.EventRepo
	Offline   bool
	Log       *zap.Logger

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	beach := func() screen.Screen {
		return home.New(home.Options{
			Engine:  opts.Engine,
			Repo:    opts.EventRepo,
			Offline: opts.Offline,
		})
	}
	if opts.SkipWelcome {
		return AppModel{router: router.New(beach())}
	}
	return AppModel{router: router.New(welcome.New(beach))}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		// Esc belongs to the screens: the session asks before leaving.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		// No size yet.
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

// frame wraps the active screen in the header and footer bars.
func (m AppModel) frame() string {
	active := m.router.Active()

	var status layout.HeaderStatus
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return kp.KeyHints()
	}
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{{Key: "any key", Description: "Skip"}, quit}
}

// Run starts the Bubble Tea program and blocks until it exits. A session
// still in progress at exit is recorded as quit.
func Run(opts Options) error {
	if opts.Engine == nil {
		return errors.New("app: no quiz engine")
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	opts.Engine.Quit(context.Background())
	if err != nil {
		log.Error("tui exited with error", zap.Error(err))
		return err
	}
	return nil
}
