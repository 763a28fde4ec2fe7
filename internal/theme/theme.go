package theme

import (
	"sort"
	"strings"

	"github.com/atomicstack/mizu/internal/widget"
	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the shell.
type Styles struct {
	Name string

	Background   *lipgloss.Style
	Title        *lipgloss.Style
	Text         *lipgloss.Style
	Muted        *lipgloss.Style
	Error        *lipgloss.Style
	Progress     *lipgloss.Style
	ProgressRest *lipgloss.Style
	Footer       *lipgloss.Style
	Taskbar      *lipgloss.Style
	Window       *lipgloss.Style
	WindowTitle  *lipgloss.Style
	Filter       *lipgloss.Style
	FilterPrompt *lipgloss.Style

	Widget   *lipgloss.Style
	Hover    *lipgloss.Style
	Pressed  *lipgloss.Style
	Focus    *lipgloss.Style
	Marker   *lipgloss.Style
	Cursor   *lipgloss.Style
	Selected *lipgloss.Style
}

// palette is the handful of colours a style set is derived from.
type palette struct {
	fg, muted, accent, alert, selBg, selFg, bar string
}

func build(name string, p palette) Styles {
	c := func(s string) lipgloss.Color { return lipgloss.Color(s) }
	return Styles{
		Name:         name,
		Background:   ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		Title:        ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
		Text:         ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		Muted:        ptr(lipgloss.NewStyle().Foreground(c(p.muted))),
		Error:        ptr(lipgloss.NewStyle().Foreground(c(p.alert)).Bold(true)),
		Progress:     ptr(lipgloss.NewStyle().Foreground(c(p.accent))),
		ProgressRest: ptr(lipgloss.NewStyle().Foreground(c(p.muted))),
		Footer:       ptr(lipgloss.NewStyle().Foreground(c(p.muted))),
		Taskbar:      ptr(lipgloss.NewStyle().Foreground(c(p.selFg)).Background(c(p.bar))),
		Window:       ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		WindowTitle:  ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
		Filter:       ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		FilterPrompt: ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
		Widget:       ptr(lipgloss.NewStyle().Foreground(c(p.fg))),
		Hover:        ptr(lipgloss.NewStyle().Foreground(c(p.selFg)).Background(c(p.selBg))),
		Pressed:      ptr(lipgloss.NewStyle().Foreground(c(p.selBg)).Background(c(p.accent)).Bold(true)),
		Focus:        ptr(lipgloss.NewStyle().Foreground(c(p.selFg)).Background(c(p.selBg)).Bold(true)),
		Marker:       ptr(lipgloss.NewStyle().Foreground(c(p.accent))),
		Cursor:       ptr(lipgloss.NewStyle().Foreground(c(p.selBg)).Background(c(p.accent)).Blink(true)),
		Selected:     ptr(lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true)),
	}
}

var sets = map[string]Styles{
	"dark": build("dark", palette{
		fg: "249", muted: "241", accent: "33", alert: "196", selBg: "238", selFg: "255", bar: "236",
	}),
	"light": build("light", palette{
		fg: "236", muted: "245", accent: "25", alert: "160", selBg: "252", selFg: "232", bar: "254",
	}),
	"contrast": build("contrast", palette{
		fg: "255", muted: "250", accent: "226", alert: "196", selBg: "21", selFg: "231", bar: "16",
	}),
}

var defaultStyles = sets["dark"]

// Default exposes the standard style set used across the shell.
func Default() *Styles {
	return &defaultStyles
}

// ByName returns the named style set, falling back to the default for
// unknown names.
func ByName(name string) *Styles {
	s, ok := sets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Default()
	}
	return &s
}

// Names lists the available style sets.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Widgets returns the renderer styles for widget hosts.
func (s *Styles) Widgets() widget.Styles {
	return widget.Styles{
		Normal:    s.Widget,
		Hover:     s.Hover,
		Pressed:   s.Pressed,
		Focus:     s.Focus,
		Indicator: s.Marker,
		Cursor:    s.Cursor,
	}
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
