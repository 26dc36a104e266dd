package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screen"
	"github.com/abhisek/surfmath/internal/store"
	"github.com/abhisek/surfmath/internal/ui/layout"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

// sessionLimit caps how many past sessions are listed.
const sessionLimit = 50

type historyLoadedMsg struct {
	Sessions []store.SessionSummary
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []store.AnswerEvent
	Err       error
}

// HistoryScreen displays past sessions and, on demand, their answers.
type HistoryScreen struct {
	eventRepo store.EventRepo
	sessions  []store.SessionSummary
	answers   map[string][]store.AnswerEvent // sessionID → answers
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		answers:   make(map[string][]store.AnswerEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		sessions, err := repo.RecentSessions(context.Background(), sessionLimit)
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) loadAnswers(sessionID string) tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		answers, err := repo.SessionAnswers(context.Background(), sessionID)
		return answersLoadedMsg{SessionID: sessionID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Session Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Back
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if s.selected >= len(s.sessions) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.sessions[s.selected].SessionID
			if _, ok := s.answers[id]; s.expanded[s.selected] && !ok {
				return s, s.loadAnswers(id)
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading sessions...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sessions yet. Paddle out!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			sessionLine(sess, i == s.selected)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(width, sess.SessionID))
		}
	}

	return b.String()
}

func sessionLine(sess store.SessionSummary, selected bool) string {
	dateStr := sess.StartedAt.Local().Format("Jan 02, 2006 15:04")
	durationStr := fmt.Sprintf("%d:%02d", sess.DurationSecs/60, sess.DurationSecs%60)

	status := "finished"
	if !sess.Completed {
		status = "left early"
	}

	prefix := "  "
	if selected {
		prefix = "> "
	}

	line := fmt.Sprintf("%s%s  %s  %3d pts  %d/%d correct  %s",
		prefix, dateStr, durationStr, sess.Score,
		sess.CorrectAnswers, sess.QuestionsServed, status)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(line)
}

func (s *HistoryScreen) renderAnswers(width int, sessionID string) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	answers, ok := s.answers[sessionID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    Loading answers...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("    No answers this session")) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark, color := "✓", theme.Success
		if !a.Correct {
			mark, color = "✗", theme.Error
		}
		line := fmt.Sprintf("    %s #%-2d  %s  you: %s  solution: %s",
			mark, a.QuestionIndex, strings.ReplaceAll(a.System, "\n", ", "),
			a.LearnerAnswer, a.CorrectAnswer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(color).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
