package problemgen

import (
	"fmt"
	"strings"
)

// maxStoryRunes clips each remembered story so a long session does not
// blow up the prompt.
const maxStoryRunes = 160

// buildDedup lists the most recent prior stories, oldest first, for the
// "already asked" part of the prompt. Repeats (the fallback question can
// be served more than once) are listed once.
func buildDedup(prior []string, max int) string {
	seen := make(map[string]bool, len(prior))
	var stories []string
	for _, q := range prior {
		q = clipStory(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		stories = append(stories, q)
	}
	if len(stories) == 0 {
		return "None"
	}
	if max > 0 && len(stories) > max {
		stories = stories[len(stories)-max:]
	}

	lines := make([]string, len(stories))
	for i, q := range stories {
		lines[i] = fmt.Sprintf("%d. %s", i+1, q)
	}
	return strings.Join(lines, "\n")
}

// clipStory collapses whitespace and cuts the story at maxStoryRunes.
func clipStory(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxStoryRunes {
		return s
	}
	return strings.TrimSpace(string(r[:maxStoryRunes-1])) + "…"
}
