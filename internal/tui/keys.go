package tui

import (
	"setup-checklist/internal/checklist"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Copy    key.Binding
	Dismiss key.Binding
	// GotIt is the celebration panel's own dismiss control.
	GotIt   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open step")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		GotIt:   key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "got it")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forState enables only the bindings that do something in s, so the help line stays honest.
func (k keyMap) forState(s checklist.State) keyMap {
	active := s == checklist.StateActive
	complete := s == checklist.StateComplete
	k.Up.SetEnabled(active)
	k.Down.SetEnabled(active)
	k.Open.SetEnabled(active)
	k.Copy.SetEnabled(active)
	k.GotIt.SetEnabled(complete)
	k.Dismiss.SetEnabled(active || complete)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.GotIt, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Copy},
		{k.GotIt, k.Dismiss, k.Refresh},
		{k.Help, k.Quit},
	}
}
