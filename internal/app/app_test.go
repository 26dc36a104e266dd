package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/surfmath/internal/router"
	"github.com/abhisek/surfmath/internal/screens/home"
	"github.com/abhisek/surfmath/internal/screens/welcome"
)

func TestStartsOnWelcome(t *testing.T) {
	m := newAppModel(Options{})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("expected welcome screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("welcome animation should start on Init")
	}
}

func TestSkipWelcomeStartsOnHome(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("expected home screen, got %T", m.router.Active())
	}
}

func TestWelcomeKeyReplacesWithHome(t *testing.T) {
	m := newAppModel(Options{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if cmd == nil {
		t.Fatal("expected transition command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	m.Update(msg)
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected home screen, got %T", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestEscIsLeftToScreens(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	m.router.Push(home.New(home.Options{}))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("app should not pop on esc by itself")
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestViewTooSmall(t *testing.T) {
	m := newAppModel(Options{SkipWelcome: true})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if v := updated.(AppModel).View(); v.Content == nil {
		t.Error("expected min-size message")
	}
}

func TestRunRequiresEngine(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without engine")
	}
}
