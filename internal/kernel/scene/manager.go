package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"github.com/atomicstack/mizu/internal/surface"
	"go.uber.org/zap"
)

// ErrNotRegistered is reported when switching to an unknown scene.
var ErrNotRegistered = errors.New("scene not registered")

// stateScenes maps kernel states to the scenes that present them.
var stateScenes = map[string]string{
	"boot":       "boot",
	"menu":       "menu",
	"app":        "app",
	"fullscreen": "fullscreen",
	"settings":   "settings",
	"error":      "error",
}

// SceneFor returns the scene mapped to a kernel state.
func SceneFor(state string) (string, bool) {
	name, ok := stateScenes[state]
	return name, ok
}

// Manager owns the scene registry and the current scene.
type Manager struct {
	bus         *bus.Bus
	scenes      map[string]Scene
	current     Scene
	currentName string
	lastName    string
	failedName  string
	container   *surface.Canvas
	stateSub    bus.Subscription
}

// NewManager creates a manager that follows stateChanged events on b.
func NewManager(b *bus.Bus) *Manager {
	m := &Manager{
		bus:    b,
		scenes: make(map[string]Scene),
	}
	m.stateSub = bus.On(b, m.handleStateChange)
	return m
}

func (m *Manager) handleStateChange(p bus.StateChanged) error {
	name, ok := SceneFor(p.To)
	if !ok {
		return nil
	}
	if _, registered := m.scenes[name]; !registered {
		events.Scene.Missing(name)
		return nil
	}
	m.SwitchTo(name, p.Data)
	return nil
}

// Register adds s under name. Replacing an existing scene is allowed and
// logged.
func (m *Manager) Register(name string, s Scene) {
	_, replaced := m.scenes[name]
	if replaced {
		logging.Warn("scene replaced", zap.String("scene", name))
	}
	m.scenes[name] = s
	events.Scene.Register(name, replaced)
	if m.container != nil {
		if cs, ok := s.(ContainerSetter); ok {
			cs.SetContainer(m.container)
		}
	}
}

// SwitchTo deactivates the current scene, activates name and publishes
// sceneChanged. Unknown names leave everything as it was.
func (m *Manager) SwitchTo(name string, data any) bool {
	next, ok := m.scenes[name]
	if !ok {
		logging.Warn("scene switch failed", zap.String("scene", name), zap.Error(ErrNotRegistered))
		events.Scene.Missing(name)
		return false
	}
	from := m.currentName
	events.Scene.Switch(from, name)
	m.lastName = from
	m.failedName = ""
	if d, ok := m.current.(Deactivator); ok {
		d.Deactivate()
	}
	m.current = next
	m.currentName = name
	if a, ok := next.(Activator); ok {
		if err := a.Activate(data); err != nil {
			m.current = nil
			m.currentName = ""
			m.failedName = name
			err = fmt.Errorf("activate scene %q: %w", name, err)
			logging.Error(err)
			events.Scene.ActivateFailed(name, err)
			m.bus.Emit(bus.SystemError{Err: err})
			return false
		}
	}
	m.bus.Emit(bus.SceneChanged{From: from, To: name, Data: data})
	return true
}

// SetContainer hands the surface to every registered scene that accepts one,
// and to scenes registered later.
func (m *Manager) SetContainer(c *surface.Canvas) {
	m.container = c
	for _, name := range m.Names() {
		if cs, ok := m.scenes[name].(ContainerSetter); ok {
			cs.SetContainer(c)
		}
	}
}

// InitializeAll runs the Initialize hook of every registered scene.
func (m *Manager) InitializeAll() {
	for _, name := range m.Names() {
		if in, ok := m.scenes[name].(Initializer); ok {
			in.Initialize()
		}
	}
}

// Current returns the active scene, or nil.
func (m *Manager) Current() Scene {
	return m.current
}

// CurrentName returns the active scene name, or "".
func (m *Manager) CurrentName() string {
	return m.currentName
}

// Last returns the scene the most recent switch deactivated, or "".
func (m *Manager) Last() string {
	return m.lastName
}

// Failed returns the scene whose activation failed in the most recent
// switch, or "".
func (m *Manager) Failed() string {
	return m.failedName
}

// Get returns a registered scene.
func (m *Manager) Get(name string) (Scene, bool) {
	s, ok := m.scenes[name]
	return s, ok
}

// Names lists registered scenes, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.scenes))
	for name := range m.scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render draws the current scene onto the container.
func (m *Manager) Render() {
	if m.container == nil || m.current == nil {
		return
	}
	if r, ok := m.current.(Renderer); ok {
		r.Render(m.container)
	}
}

// Reset deactivates the current scene and empties the registry.
func (m *Manager) Reset() {
	if d, ok := m.current.(Deactivator); ok {
		d.Deactivate()
	}
	m.current = nil
	m.currentName = ""
	m.lastName = ""
	m.failedName = ""
	m.scenes = make(map[string]Scene)
}

// Close stops following state changes.
func (m *Manager) Close() {
	m.bus.Unsubscribe(bus.StateChangedEvent, m.stateSub)
}
