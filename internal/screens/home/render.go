package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/surfmath/internal/ui/components"
	"github.com/abhisek/surfmath/internal/ui/theme"
)

// renderTitle returns the banner, or its one-line form in compact mode.
func renderTitle(cw int, compact bool) string {
	bannerWidth := cw
	if compact {
		bannerWidth = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.RenderBanner(bannerWidth))
}

// renderStatsBar renders past-session stats in a bordered box matching content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.Sand).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	last := dimStyle.Render("NO SETS YET")
	if compact {
		last = dimStyle.Render("-")
	}
	if st.last != nil {
		text := fmt.Sprintf("LAST %d/%d", st.last.CorrectAnswers, st.last.QuestionsServed)
		if compact {
			text = fmt.Sprintf("%d/%d", st.last.CorrectAnswers, st.last.QuestionsServed)
		}
		last = lastStyle.Render(text)
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", st.best)),
			countStyle.Render(fmt.Sprintf("≈%d", st.sessions)),
			last,
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d", st.best)),
			countStyle.Render(fmt.Sprintf("≈ %d SESSIONS", st.sessions)),
			last,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
			continue
		}
		buttons = append(buttons, components.MenuButton(label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Sand).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderOfflineBanner notes that questions come from the built-in stories.
func renderOfflineBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Offline: questions come from the built-in surf stories (see surfmath --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
