package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Disabled items are shown but can be
// neither selected nor activated.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// MenuKeyMap holds the menu's key bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// DefaultMenuKeys moves with arrows or j/k and activates with Enter or Space.
var DefaultMenuKeys = MenuKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Select: key.NewBinding(key.WithKeys("enter", "space", " "), key.WithHelp("Enter", "Select")),
}

// Menu is a vertical list of actions with one selected entry.
type Menu struct {
	Items    []MenuItem
	Selected int
	Keys     MenuKeyMap
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1, Keys: DefaultMenuKeys}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// move steps the selection by dir, skipping disabled items. It stays put
// at either end.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Update handles navigation and returns the selected item's command on
// activation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		m.move(-1)
	case key.Matches(kmsg, m.Keys.Down):
		m.move(1)
	case key.Matches(kmsg, m.Keys.Select):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		if item := m.Items[m.Selected]; item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}
