// Package input turns raw host input into kernel events. It never touches
// widgets; scenes decide what navigate and action mean.
package input

import (
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Point is a raw pointer position in surface cells.
type Point struct {
	X, Y int
}

// ControlLocator reports the system control action under (x, y), if any.
type ControlLocator func(x, y int) (action string, ok bool)

// Option configures a Manager.
type Option func(*Manager)

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Manager) {
		m.keys = k
	}
}

// WithNavigationMode sets the initial mode: true is focus navigation,
// false is the free cursor.
func WithNavigationMode(enabled bool) Option {
	return func(m *Manager) {
		m.navigation = enabled
	}
}

// Manager normalizes keyboard, pointer and touch input onto the bus.
type Manager struct {
	bus        *bus.Bus
	keys       KeyMap
	pressed    map[string]struct{}
	cursor     Point
	navigation bool
	controls   ControlLocator
}

// New creates a manager in focus navigation mode.
func New(b *bus.Bus, opts ...Option) *Manager {
	m := &Manager{
		bus:        b,
		keys:       DefaultKeyMap(),
		pressed:    make(map[string]struct{}),
		navigation: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// KeyMap returns the active bindings.
func (m *Manager) KeyMap() KeyMap {
	return m.keys
}

// KeyDown records key as pressed, publishes keyDown and then any navigation
// or action the key is bound to.
func (m *Manager) KeyDown(key, code string, native any) {
	m.pressed[key] = struct{}{}
	events.Input.Key(key, code)
	m.bus.Emit(bus.KeyDown{Key: key, Code: code, Native: native})
	m.dispatch(key)
}

func (m *Manager) dispatch(key string) {
	k := m.keys
	switch {
	case Matches(key, k.Quit):
		m.bus.Emit(bus.Shutdown{})
	case Matches(key, k.ToggleMode):
		m.ToggleNavigationMode()
	case Matches(key, k.Fullscreen):
		m.bus.Emit(bus.Action{Type: bus.Fullscreen})
	case Matches(key, k.Up):
		m.bus.Emit(bus.Navigate{Direction: bus.Up})
	case Matches(key, k.Down):
		m.bus.Emit(bus.Navigate{Direction: bus.Down})
	case Matches(key, k.Left):
		m.bus.Emit(bus.Navigate{Direction: bus.Left})
	case Matches(key, k.Right):
		m.bus.Emit(bus.Navigate{Direction: bus.Right})
	case Matches(key, k.Next):
		m.bus.Emit(bus.Navigate{Direction: bus.Next})
	case Matches(key, k.Previous):
		m.bus.Emit(bus.Navigate{Direction: bus.Previous})
	case Matches(key, k.Positive):
		m.bus.Emit(bus.Action{Type: bus.Positive})
	case Matches(key, k.Negative):
		m.bus.Emit(bus.Action{Type: bus.Negative})
	}
}

// KeyUp clears key and publishes keyUp.
func (m *Manager) KeyUp(key, code string) {
	delete(m.pressed, key)
	m.bus.Emit(bus.KeyUp{Key: key, Code: code})
}

// IsKeyPressed reports whether key is held.
func (m *Manager) IsKeyPressed(key string) bool {
	_, ok := m.pressed[key]
	return ok
}

// SetControls installs the system control hit test. Nil removes it.
func (m *Manager) SetControls(locate ControlLocator) {
	m.controls = locate
}

// PointerDown publishes buttonAction when (x, y) hits a system control and
// pointerDown otherwise.
func (m *Manager) PointerDown(x, y int) {
	m.cursor = Point{X: x, Y: y}
	events.Input.Pointer("down", x, y)
	if m.controls != nil {
		if action, ok := m.controls(x, y); ok {
			events.Input.Control(action)
			m.bus.Emit(bus.ButtonAction{Action: action})
			return
		}
	}
	m.bus.Emit(bus.PointerDown{X: x, Y: y})
}

// PointerMove updates the raw cursor and publishes cursorMove.
func (m *Manager) PointerMove(x, y int) {
	m.cursor = Point{X: x, Y: y}
	m.bus.Emit(bus.CursorMove{X: x, Y: y})
}

// PointerUp publishes pointerUp.
func (m *Manager) PointerUp(x, y int) {
	m.cursor = Point{X: x, Y: y}
	events.Input.Pointer("up", x, y)
	m.bus.Emit(bus.PointerUp{X: x, Y: y})
}

// TouchStart follows the pointer-down path with the first touch point.
func (m *Manager) TouchStart(points []Point) {
	if len(points) == 0 {
		return
	}
	m.PointerDown(points[0].X, points[0].Y)
}

// TouchMove follows the pointer-move path with the first touch point.
func (m *Manager) TouchMove(points []Point) {
	if len(points) == 0 {
		return
	}
	m.PointerMove(points[0].X, points[0].Y)
}

// TouchEnd follows the pointer-up path with the lifted touch point.
func (m *Manager) TouchEnd(points []Point) {
	if len(points) == 0 {
		return
	}
	m.PointerUp(points[0].X, points[0].Y)
}

// Cursor returns the last known raw pointer position.
func (m *Manager) Cursor() Point {
	return m.cursor
}

// NavigationMode reports whether focus navigation is on.
func (m *Manager) NavigationMode() bool {
	return m.navigation
}

// SetNavigationMode stores the mode and publishes navigationModeChanged.
func (m *Manager) SetNavigationMode(enabled bool) {
	m.navigation = enabled
	events.Input.NavigationMode(enabled)
	m.bus.Emit(bus.NavigationModeChanged{Enabled: enabled})
}

// ToggleNavigationMode flips between focus navigation and the free cursor.
func (m *Manager) ToggleNavigationMode() {
	m.SetNavigationMode(!m.navigation)
}

// Reset forgets pressed keys, the raw cursor and installed controls.
func (m *Manager) Reset() {
	m.pressed = make(map[string]struct{})
	m.cursor = Point{}
	m.controls = nil
}

// HandleKey feeds a terminal key press. Terminals report no release, so
// keyUp follows immediately.
func (m *Manager) HandleKey(msg tea.KeyMsg) {
	name := msg.String()
	code := msg.Type.String()
	m.KeyDown(name, code, msg)
	m.KeyUp(name, code)
}

// HandleMouse feeds a terminal mouse event. The wheel navigates.
func (m *Manager) HandleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.bus.Emit(bus.Navigate{Direction: bus.Up})
		}
		return
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.bus.Emit(bus.Navigate{Direction: bus.Down})
		}
		return
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.PointerMove(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.PointerDown(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.PointerUp(msg.X, msg.Y)
	}
}
