package widget

import (
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// Styles are the looks a renderer picks from. Nil entries render unstyled.
type Styles struct {
	Normal    *lipgloss.Style
	Hover     *lipgloss.Style
	Pressed   *lipgloss.Style
	Focus     *lipgloss.Style
	Indicator *lipgloss.Style
	Cursor    *lipgloss.Style
}

func (s Styles) pick(w Widget) *lipgloss.Style {
	switch {
	case w.State() == Pressed:
		return s.Pressed
	case w.Focused():
		return s.Focus
	case w.State() == Hover:
		return s.Hover
	default:
		return s.Normal
	}
}

func fit(label string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(label) <= width {
		return label
	}
	return truncate.StringWithTail(label, uint(width), "…")
}

// RenderButton draws w as a bordered box with its label centred. Focused
// widgets get a marker left of the box.
func RenderButton(c *surface.Canvas, w Widget, st Styles) {
	r := w.Bounds()
	style := st.pick(w)
	c.Fill(r, ' ', style)
	c.Box(r, style)
	label := fit(w.Label(), r.W-2)
	x := r.X + (r.W-ansi.StringWidth(label))/2
	c.Text(x, r.Y+r.H/2, label, style)
	if w.Focused() && r.X >= 2 {
		c.Set(r.X-2, r.Y+r.H/2, '▶', st.Indicator)
	}
}

// RenderItem draws w as a single list row: a marker column then the label.
func RenderItem(c *surface.Canvas, w Widget, st Styles) {
	r := w.Bounds()
	style := st.pick(w)
	c.Fill(surface.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, ' ', style)
	if w.Focused() {
		c.Set(r.X, r.Y, '▶', st.Indicator)
	}
	c.Text(r.X+2, r.Y, fit(w.Label(), r.W-2), style)
}

// RenderCursor draws the host cursor when visible.
func RenderCursor(c *surface.Canvas, cur *Cursor, st Styles) {
	if cur == nil || !cur.Visible() {
		return
	}
	x, y := cur.Position()
	c.Set(x, y, '◆', st.Cursor)
}
