package widget

import (
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging/events"
)

// Mode selects how a Host interprets input.
type Mode int

const (
	// ModeFocus moves a highlight through the widget list.
	ModeFocus Mode = iota
	// ModeFree follows a cursor and activates whatever is under it.
	ModeFree
)

func (m Mode) String() string {
	if m == ModeFree {
		return "free"
	}
	return "focus"
}

// ParseMode maps "free" to ModeFree and anything else to ModeFocus.
func ParseMode(s string) Mode {
	if s == "free" {
		return ModeFree
	}
	return ModeFocus
}

// InteractionKind classifies a user interaction reported by a Host.
type InteractionKind int

const (
	InteractNavigate InteractionKind = iota
	InteractModeToggle
	InteractActivate
)

// Interaction is reported for every genuine user input a Host handles.
// Target is the widget the input was aimed at, if any.
type Interaction struct {
	Kind   InteractionKind
	Target Widget
}

// Host owns a scene's widgets, its cursor and the navigation mode. Exactly
// one mode is active at a time.
type Host struct {
	name       string
	widgets    []Widget
	focus      int
	mode       Mode
	cursor     *Cursor
	hovered    Widget
	pressed    Widget
	stepX      int
	stepY      int
	columns    int
	onInteract func(Interaction)
}

// NewHost creates an empty host in mode.
func NewHost(name string, mode Mode) *Host {
	h := &Host{
		name:    name,
		focus:   -1,
		mode:    mode,
		cursor:  NewCursor(0, 0),
		stepX:   2,
		stepY:   1,
		columns: 1,
	}
	if mode == ModeFree {
		h.cursor.Show()
	}
	return h
}

// SetStep sets the keyboard nudge distance used in free mode.
func (h *Host) SetStep(x, y int) {
	if x > 0 {
		h.stepX = x
	}
	if y > 0 {
		h.stepY = y
	}
}

// SetColumns makes up/down move by n widgets in focus mode, for grids.
func (h *Host) SetColumns(n int) {
	if n < 1 {
		n = 1
	}
	h.columns = n
}

// SetBounds sets the area the cursor is clamped to.
func (h *Host) SetBounds(w, height int) {
	h.cursor.SetBounds(w, height)
}

// OnInteract registers the interaction observer.
func (h *Host) OnInteract(fn func(Interaction)) {
	h.onInteract = fn
}

func (h *Host) report(kind InteractionKind, target Widget) {
	if h.onInteract != nil {
		h.onInteract(Interaction{Kind: kind, Target: target})
	}
}

// SetWidgets replaces the widget list. Focus mode starts on the first
// widget; free mode re-evaluates hover under the cursor.
func (h *Host) SetWidgets(ws ...Widget) {
	for _, w := range ws {
		w.SetFocused(false)
		w.SetState(Normal)
	}
	h.widgets = ws
	h.focus = -1
	h.hovered = nil
	h.pressed = nil
	if h.mode == ModeFocus {
		if len(ws) > 0 {
			h.applyFocus(0)
		}
		return
	}
	h.updateHover()
}

// Widgets returns the managed widgets.
func (h *Host) Widgets() []Widget {
	return h.widgets
}

// Mode returns the active navigation mode.
func (h *Host) Mode() Mode {
	return h.mode
}

// Cursor exposes the host cursor.
func (h *Host) Cursor() *Cursor {
	return h.cursor
}

// FocusIndex returns the focused position, or -1.
func (h *Host) FocusIndex() int {
	return h.focus
}

// Focused returns the focused widget, or nil.
func (h *Host) Focused() Widget {
	if h.focus < 0 || h.focus >= len(h.widgets) {
		return nil
	}
	return h.widgets[h.focus]
}

// Hovered returns the widget under the cursor in free mode, or nil.
func (h *Host) Hovered() Widget {
	return h.hovered
}

// Focus moves focus to index i without reporting an interaction.
func (h *Host) Focus(i int) {
	if h.mode != ModeFocus || i < 0 || i >= len(h.widgets) {
		return
	}
	h.applyFocus(i)
}

func (h *Host) applyFocus(i int) {
	if prev := h.Focused(); prev != nil {
		prev.SetFocused(false)
		prev.SetState(Normal)
	}
	h.focus = i
	w := h.widgets[i]
	w.SetFocused(true)
	w.SetState(Hover)
	x, y := w.Bounds().Center()
	h.cursor.MoveTo(x, y)
	events.Focus.Move(h.name, i)
}

// Navigate handles a navigate event. Focus mode steps through the list with
// wraparound; free mode nudges the cursor.
func (h *Host) Navigate(dir bus.Direction) {
	if h.mode == ModeFree {
		h.nudge(dir)
		return
	}
	n := len(h.widgets)
	if n == 0 {
		h.report(InteractNavigate, nil)
		return
	}
	delta := 0
	switch dir {
	case bus.Up:
		delta = -h.columns
	case bus.Down:
		delta = h.columns
	case bus.Left, bus.Previous:
		delta = -1
	case bus.Right, bus.Next:
		delta = 1
	}
	current := h.focus
	if current < 0 {
		current = 0
		delta = 0
	}
	next := wrapIndex(current+delta, n)
	h.applyFocus(next)
	h.report(InteractNavigate, h.widgets[next])
}

func (h *Host) nudge(dir bus.Direction) {
	switch dir {
	case bus.Up:
		h.cursor.MoveBy(0, -h.stepY)
	case bus.Down:
		h.cursor.MoveBy(0, h.stepY)
	case bus.Left:
		h.cursor.MoveBy(-h.stepX, 0)
	case bus.Right:
		h.cursor.MoveBy(h.stepX, 0)
	default:
		return
	}
	h.updateHover()
	h.report(InteractNavigate, h.hovered)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Activate handles a positive action: the focused widget in focus mode,
// the widget under the cursor in free mode.
func (h *Host) Activate() {
	var target Widget
	if h.mode == ModeFocus {
		target = h.Focused()
	} else {
		h.updateHover()
		target = h.hovered
	}
	h.report(InteractActivate, target)
	if target != nil {
		h.trigger(target)
	}
}

// ActivateWidget triggers w as if the user had selected it. It reports no
// interaction; timers use it.
func (h *Host) ActivateWidget(w Widget) {
	if w != nil && h.contains(w) {
		h.trigger(w)
	}
}

func (h *Host) trigger(w Widget) {
	w.SetState(Pressed)
	events.Focus.Trigger(h.name, w.Label())
	w.Trigger()
	if !h.contains(w) {
		return
	}
	if w.Focused() || w == h.hovered {
		w.SetState(Hover)
	} else {
		w.SetState(Normal)
	}
}

func (h *Host) contains(w Widget) bool {
	for _, candidate := range h.widgets {
		if candidate == w {
			return true
		}
	}
	return false
}

// PointerMove tracks the pointer in free mode.
func (h *Host) PointerMove(x, y int) {
	if h.mode != ModeFree {
		return
	}
	h.cursor.MoveTo(x, y)
	h.updateHover()
	h.report(InteractNavigate, h.hovered)
}

// PointerDown presses the widget under the pointer in free mode.
func (h *Host) PointerDown(x, y int) {
	if h.mode != ModeFree {
		return
	}
	h.cursor.MoveTo(x, y)
	h.updateHover()
	if h.hovered != nil {
		h.pressed = h.hovered
		h.pressed.SetState(Pressed)
	}
}

// PointerUp triggers the widget under the pointer in free mode.
func (h *Host) PointerUp(x, y int) {
	if h.mode != ModeFree {
		return
	}
	h.cursor.MoveTo(x, y)
	pressed := h.pressed
	h.pressed = nil
	h.updateHover()
	if pressed != nil && pressed != h.hovered && h.contains(pressed) {
		pressed.SetState(Normal)
	}
	target := h.hovered
	h.report(InteractActivate, target)
	if target != nil {
		h.trigger(target)
	}
}

func (h *Host) updateHover() {
	x, y := h.cursor.Position()
	var hit Widget
	for _, w := range h.widgets {
		if w.HitTest(x, y) {
			hit = w
			break
		}
	}
	if hit == h.hovered {
		return
	}
	if h.hovered != nil && h.hovered != h.pressed {
		h.hovered.SetState(Normal)
	}
	h.hovered = hit
	if hit != nil && hit.State() != Pressed {
		hit.SetState(Hover)
	}
}

// ToggleMode flips between focus and free mode.
func (h *Host) ToggleMode() {
	if h.mode == ModeFocus {
		h.SetMode(ModeFree)
		return
	}
	h.SetMode(ModeFocus)
}

// SetMode switches mode, clearing the other mode's selection. Entering focus
// mode focuses the widget nearest the cursor.
func (h *Host) SetMode(mode Mode) {
	if mode == h.mode {
		return
	}
	h.mode = mode
	events.Focus.Mode(h.name, mode.String())
	if mode == ModeFree {
		if prev := h.Focused(); prev != nil {
			prev.SetFocused(false)
			prev.SetState(Normal)
		}
		h.focus = -1
		h.cursor.Show()
		h.updateHover()
		h.report(InteractModeToggle, nil)
		return
	}
	if h.hovered != nil {
		h.hovered.SetState(Normal)
	}
	if h.pressed != nil {
		h.pressed.SetState(Normal)
	}
	h.hovered = nil
	h.pressed = nil
	h.cursor.Hide()
	if idx := h.nearest(); idx >= 0 {
		h.applyFocus(idx)
	}
	h.report(InteractModeToggle, nil)
}

// nearest returns the widget whose centre is closest to the cursor, the
// lower index winning ties.
func (h *Host) nearest() int {
	cx, cy := h.cursor.Position()
	best, bestDist := -1, 0
	for i, w := range h.widgets {
		x, y := w.Bounds().Center()
		dx, dy := x-cx, y-cy
		dist := dx*dx + dy*dy
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
