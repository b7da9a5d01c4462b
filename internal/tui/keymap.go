package tui

import (
	"fmt"

	"charm.land/bubbles/v2/key"
)

// KeyMap holds the wizard's navigation bindings.
type KeyMap struct {
	Next    key.Binding
	Enter   key.Binding // next, unless the step wants enter itself
	Back    key.Binding
	Help    key.Binding
	Sidebar key.Binding
	Abort   key.Binding
	Jump    []key.Binding // alt+N selects section N
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Next: key.NewBinding(
			key.WithKeys("ctrl+n", "pgdown"),
			key.WithHelp("ctrl+n", "next"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "pgup"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+g"),
			key.WithHelp("f1", "help"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "sidebar"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	for i := 1; i <= 9; i++ {
		k := fmt.Sprintf("alt+%d", i)
		km.Jump = append(km.Jump, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, "section"),
		))
	}
	return km
}

// HintPairs returns the footer hints as key/description pairs.
func (km KeyMap) HintPairs() []string {
	var pairs []string
	for _, b := range []key.Binding{km.Enter, km.Back, km.Help, km.Sidebar, km.Abort} {
		h := b.Help()
		pairs = append(pairs, h.Key, h.Desc)
	}
	return pairs
}
