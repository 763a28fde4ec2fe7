package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds terminal key names to kernel intents.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Positive   key.Binding
	Negative   key.Binding
	Next       key.Binding
	Previous   key.Binding
	ToggleMode key.Binding
	Fullscreen key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Positive:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Negative:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Previous:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "cursor mode")),
		Fullscreen: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "fullscreen")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "shut down")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Positive, k.Negative, k.Next, k.ToggleMode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Positive, k.Negative, k.Next, k.Previous},
		{k.ToggleMode, k.Fullscreen, k.Quit},
	}
}

type keyName string

func (k keyName) String() string { return string(k) }

// Matches reports whether a normalized key name triggers b.
func Matches(name string, b key.Binding) bool {
	return key.Matches(keyName(name), b)
}
