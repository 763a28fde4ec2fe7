package scenes

import (
	"github.com/atomicstack/mizu/internal/apps"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/kernel/input"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// inner is the body area of a framed window.
func inner(frame surface.Rect) surface.Rect {
	return surface.Rect{X: frame.X + 1, Y: frame.Y + 1, W: max(frame.W-2, 0), H: max(frame.H-2, 0)}
}

// drawWindow frames w in r with its title on the top border.
func drawWindow(c *surface.Canvas, r surface.Rect, w *apps.Window, active bool, st *theme.Styles) {
	if r.W < 4 || r.H < 3 {
		return
	}
	c.Fill(r, ' ', st.Window)
	c.Box(r, st.Window)
	title := " " + w.App().Icon + " " + w.Title() + " "
	if active {
		title += "● "
	}
	c.Text(r.X+2, r.Y, title, st.WindowTitle)
	body := inner(r)
	c.Blit(body, w.View(body.W, body.H), st.Window)
}

// nativeKey recovers the terminal key event behind a keyDown, building a
// rune event when the host sent none.
func nativeKey(p bus.KeyDown) tea.KeyMsg {
	if msg, ok := p.Native.(tea.KeyMsg); ok {
		return msg
	}
	switch p.Key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(p.Key)}
}

// reserved reports keys the shell keeps for itself whatever has focus.
func reserved(k input.KeyMap, key string) bool {
	return input.Matches(key, k.Quit) ||
		input.Matches(key, k.ToggleMode) ||
		input.Matches(key, k.Fullscreen)
}
