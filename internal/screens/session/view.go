package session

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/linsys"
	"github.com/abhisek/surfmath/internal/problemgen"
	"github.com/abhisek/surfmath/internal/quiz"
	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderProgress renders the "Wave 3 of 15" line with the swell meter.
func renderProgress(width int, st quiz.State) string {
	meter := components.SwellMeter{
		Label: fmt.Sprintf("Wave %d of %d", st.QuestionIndex, st.Total()),
		Done:  st.Answered(),
		Total: st.Total(),
		Width: components.ContentWidth(width),
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, meter.View())
}

func (s *SessionScreen) renderLoading(width int, st quiz.State) string {
	var b strings.Builder
	b.WriteString("\n")
	if st.QuestionIndex > 0 {
		b.WriteString(renderProgress(width, st))
		b.WriteString("\n\n\n")
	}
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render(s.spinner.View() + " Waiting for the next set..."))
	return b.String()
}

// renderProblem renders the story, the two equations and the variable legend.
func renderProblem(width int, q *problemgen.Question) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(cw - 6).
		Foreground(theme.Text).
		Render(q.Text))
	b.WriteString("\n\n")
	b.WriteString(theme.Equation.Render(q.System.Eq1.String()))
	b.WriteString("\n")
	b.WriteString(theme.Equation.Render(q.System.Eq2.String()))
	if q.XLabel != "" || q.YLabel != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("x = %s", q.XLabel)))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("y = %s", q.YLabel)))
	}

	card := components.Card(b.String(), cw, theme.Border)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (s *SessionScreen) renderQuestion(width int, st quiz.State) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(renderProgress(width, st))
	b.WriteString("\n\n")
	b.WriteString(renderProblem(width, st.Question))
	b.WriteString("\n\n")
	b.WriteString(s.renderInputs(width))
	return b.String()
}

func (s *SessionScreen) renderInputs(width int) string {
	label := func(i int, name string) string {
		style := theme.Unselected
		if s.focus == i {
			style = theme.Selected
		}
		return style.Render(name+" = ") + s.inputs[i].View()
	}
	row := label(inputX, "x") + "      " + label(inputY, "y")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
}

func (s *SessionScreen) renderFeedback(width int, st quiz.State) string {
	fb := st.Feedback
	if fb == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(renderProgress(width, st))
	b.WriteString("\n\n")

	if fb.Correct {
		b.WriteString(theme.Correct.
			Width(width).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("Radical! +%d points", st.Config.CorrectBonus)))
		b.WriteString("\n")
		b.WriteString(centered(width).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("The solution is %s.", fb.Solution)))
	} else {
		b.WriteString(theme.Incorrect.
			Width(width).
			Align(lipgloss.Center).
			Render("Wipeout!"))
		b.WriteString("\n")
		b.WriteString(centered(width).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("You said %s, the solution is %s.", answerText(fb.Answer), fb.Solution)))
		b.WriteString("\n\n")
		b.WriteString(s.renderExplanation(width, fb))
	}

	b.WriteString("\n\n")
	next := "Press any key for the next wave..."
	if st.QuestionIndex >= st.Total() {
		next = "Press any key to see your session..."
	}
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render(next))

	return b.String()
}

func (s *SessionScreen) renderExplanation(width int, fb *quiz.Feedback) string {
	if fb.ExplanationPending {
		return centered(width).
			Foreground(theme.TextDim).
			Render(s.spinner.View() + " Working out the solution...")
	}
	if fb.Explanation == "" {
		return ""
	}
	cw := components.ContentWidth(width)
	exp := lipgloss.NewStyle().
		Width(cw - 6).
		Foreground(theme.Text).
		Render(fb.Explanation)
	card := components.Card(exp, cw, theme.Accent)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

// answerText prints what the learner typed; blanks and junk parse to NaN.
func answerText(a linsys.Answer) string {
	part := func(f float64) string {
		if math.IsNaN(f) {
			return "?"
		}
		return linsys.FormatNumber(f)
	}
	return fmt.Sprintf("(%s, %s)", part(a.X), part(a.Y))
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render("Paddle in early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("This session will be logged as unfinished."))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.Primary).
		Render("[N] No, keep surfing"))

	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
