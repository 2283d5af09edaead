package teahost

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the keys the host handles itself instead of forwarding
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default host key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
