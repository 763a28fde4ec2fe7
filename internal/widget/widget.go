// Package widget holds the interactive primitives scenes build with and the
// Host that drives them in focus or free cursor mode.
package widget

import "github.com/atomicstack/mizu/internal/surface"

// Rect is the widget bounding box in surface cells.
type Rect = surface.Rect

// VisualState is the pointer/activation state of a widget. Focus is tracked
// separately as an overlay.
type VisualState int

const (
	Normal VisualState = iota
	Hover
	Pressed
)

func (s VisualState) String() string {
	switch s {
	case Hover:
		return "hover"
	case Pressed:
		return "pressed"
	default:
		return "normal"
	}
}

// Widget is an interactive rectangle with a trigger action.
type Widget interface {
	ID() string
	Bounds() Rect
	Label() string
	SetLabel(label string)
	State() VisualState
	SetState(s VisualState)
	Focused() bool
	SetFocused(focused bool)
	HitTest(x, y int) bool
	Trigger()
}

// Button is the stock Widget.
type Button struct {
	id       string
	bounds   Rect
	label    string
	state    VisualState
	focused  bool
	onSelect func()
}

// NewButton creates a button in the normal state.
func NewButton(id, label string, bounds Rect, onSelect func()) *Button {
	return &Button{id: id, label: label, bounds: bounds, onSelect: onSelect}
}

func (b *Button) ID() string              { return b.id }
func (b *Button) Bounds() Rect            { return b.bounds }
func (b *Button) SetBounds(r Rect)        { b.bounds = r }
func (b *Button) Label() string           { return b.label }
func (b *Button) SetLabel(label string)   { b.label = label }
func (b *Button) State() VisualState      { return b.state }
func (b *Button) SetState(s VisualState)  { b.state = s }
func (b *Button) Focused() bool           { return b.focused }
func (b *Button) SetFocused(focused bool) { b.focused = focused }
func (b *Button) HitTest(x, y int) bool   { return b.bounds.Contains(x, y) }
func (b *Button) SetOnSelect(fn func())   { b.onSelect = fn }

// Trigger runs the select action.
func (b *Button) Trigger() {
	if b.onSelect != nil {
		b.onSelect()
	}
}
