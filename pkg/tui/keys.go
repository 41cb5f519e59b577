package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func k(keys []string, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, desc),
	)
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     k([]string{"up", "k"}, "↑/k", "up"),
		Down:   k([]string{"down", "j"}, "↓/j", "down"),
		Enter:  k([]string{"enter"}, "enter", "select"),
		Cancel: k([]string{"esc"}, "esc", "back"),
		Quit:   k([]string{"ctrl+c"}, "ctrl+c", "quit"),
	}
}

// menuHelp and formHelp are the one-line key hints shown under each view.
func (km KeyMap) menuHelp() string {
	return helpLine(km.Up, km.Down, km.Enter, km.Cancel)
}

func (km KeyMap) formHelp() string {
	return helpLine(km.Enter, km.Cancel, km.Quit)
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = h.Key + " " + h.Desc
	}
	return strings.Join(parts, " • ")
}
