package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 40) || !IsTooSmall(120, 23) {
		t.Error("below minimum should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestIsCompact(t *testing.T) {
	if !IsCompact(99, 40) {
		t.Error("narrow terminal should be compact")
	}
	if !IsCompact(120, 30-Chrome-1) {
		t.Error("short terminal should be compact")
	}
	if IsCompact(120, 30) {
		t.Error("large terminal should not be compact")
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Lineup", HeaderStatus{Score: 30, Question: 4, Total: 15}, 100)
	for _, want := range []string{"Surf Math", "Lineup", "★ 30", "≈ 4/15"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if w := lipgloss.Width(out); w != 100 {
		t.Errorf("width = %d, want 100", w)
	}

	if strings.Contains(RenderHeader("Beach", HeaderStatus{Score: 10}, 100), "≈") {
		t.Error("counter should be hidden without a total")
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Beach", HeaderStatus{}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 80)
	out := RenderFrame(header, "content", footer, 80, 24)
	if h := lipgloss.Height(out); h != 24 {
		t.Errorf("height = %d, want 24", h)
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage(60, 20)
	if !strings.Contains(out, "60×20") {
		t.Error("should report current size")
	}
}
