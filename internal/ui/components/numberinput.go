package components

import (
	"regexp"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/theme"
)

// partialNumber matches everything a signed decimal can look like while
// it is being typed, including "", "-" and "3.".
var partialNumber = regexp.MustCompile(`^[+-]?[0-9]*([.,][0-9]*)?$`)

// Verdict is the mark shown after an answer has been checked.
type Verdict int

const (
	Unchecked Verdict = iota
	Right
	Wrong
)

// NumberInput is a text input that refuses any edit, typed or pasted,
// that would stop it from holding a signed decimal.
type NumberInput struct {
	textinput.Model
	verdict Verdict
}

func NewNumberInput(placeholder string, limit int) NumberInput {
	m := textinput.New()
	m.Placeholder = placeholder
	m.CharLimit = limit
	return NumberInput{Model: m}
}

func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	before, pos := n.Value(), n.Position()

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	if !partialNumber.MatchString(n.Value()) {
		n.SetValue(before)
		n.SetCursor(pos)
	}
	return n, cmd
}

func (n NumberInput) View() string {
	switch n.verdict {
	case Right:
		return n.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case Wrong:
		return n.Model.View() + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return n.Model.View()
}

// Mark sets the verdict shown next to the value.
func (n *NumberInput) Mark(v Verdict) { n.verdict = v }

// Clear empties the input and drops the verdict.
func (n *NumberInput) Clear() {
	n.Reset()
	n.verdict = Unchecked
}
