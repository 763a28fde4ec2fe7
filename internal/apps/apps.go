// Package apps hosts mini-applications in windows on the desktop. An app is
// a Definition whose Entry wires itself into a Container; after that the app
// owns its state and its teardown.
package apps

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"github.com/atomicstack/mizu/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownApp is returned by Launch for unregistered app IDs.
var ErrUnknownApp = errors.New("unknown app")

// Definition describes a launchable app.
type Definition struct {
	ID    string
	Name  string
	Icon  string
	Entry func(*Container) error
}

// Container is the window-side handle an app attaches to.
type Container struct {
	id      string
	app     string
	ctx     context.Context
	cancel  context.CancelFunc
	store   store.Store
	title   string
	view    func(width, height int) string
	key     func(tea.KeyMsg) bool
	pointer func(x, y int)
	closers []func()
	closed  bool
	manager *Manager
}

// ID is the hosting window's ID.
func (c *Container) ID() string { return c.id }

// Context is cancelled once the window's close hooks have run.
func (c *Container) Context() context.Context { return c.ctx }

// Store is the shell's key-value store, scoped to the shell namespace.
func (c *Container) Store() store.Store { return c.store }

// SetTitle changes the window title.
func (c *Container) SetTitle(title string) { c.title = title }

// SetView installs the window body renderer. It receives the content size
// in cells and returns plain text lines.
func (c *Container) SetView(fn func(width, height int) string) { c.view = fn }

// OnKey installs the key handler used while the window has keyboard focus.
// It reports whether the key was consumed.
func (c *Container) OnKey(fn func(tea.KeyMsg) bool) { c.key = fn }

// OnPointer installs the click handler; coordinates are relative to the
// window body.
func (c *Container) OnPointer(fn func(x, y int)) { c.pointer = fn }

// OnClose registers teardown. Hooks run in reverse order.
func (c *Container) OnClose(fn func()) {
	if fn != nil {
		c.closers = append(c.closers, fn)
	}
}

// Close asks the manager to close this window.
func (c *Container) Close() {
	if c.manager != nil {
		c.manager.Close(c.id)
		return
	}
	c.teardown()
}

func (c *Container) teardown() {
	if c.closed {
		return
	}
	c.closed = true
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
	c.cancel()
}

// Window is one running app instance.
type Window struct {
	def       Definition
	container *Container
}

func (w *Window) ID() string      { return w.container.id }
func (w *Window) App() Definition { return w.def }

// Title returns the app-provided title, or the app name.
func (w *Window) Title() string {
	if w.container.title != "" {
		return w.container.title
	}
	return w.def.Name
}

// View renders the window body.
func (w *Window) View(width, height int) string {
	if w.container.view == nil || width <= 0 || height <= 0 {
		return ""
	}
	return w.container.view(width, height)
}

// HandleKey forwards msg to the app.
func (w *Window) HandleKey(msg tea.KeyMsg) bool {
	if w.container.key == nil {
		return false
	}
	return w.container.key(msg)
}

// HandlePointer forwards a click inside the window body.
func (w *Window) HandlePointer(x, y int) {
	if w.container.pointer != nil {
		w.container.pointer(x, y)
	}
}

// Manager keeps the app registry and the open windows. The last window in
// the stack has focus.
type Manager struct {
	bus     *bus.Bus
	store   store.Store
	defs    []Definition
	byID    map[string]int
	windows []*Window
	newID   func() string
}

// NewManager creates an empty manager. Apps see s through the shell
// namespace.
func NewManager(b *bus.Bus, s store.Store) *Manager {
	if s == nil {
		s = store.NewMemory()
	}
	return &Manager{
		bus:   b,
		store: store.Namespace(s, store.Prefix),
		byID:  make(map[string]int),
		newID: func() string { return uuid.NewString() },
	}
}

// Register adds def. Re-registering an ID replaces the definition in place.
func (m *Manager) Register(def Definition) error {
	if def.ID == "" {
		return errors.New("app definition needs an id")
	}
	if def.Entry == nil {
		return fmt.Errorf("app %q has no entry", def.ID)
	}
	if def.Name == "" {
		def.Name = def.ID
	}
	if i, ok := m.byID[def.ID]; ok {
		logging.Warn("app replaced", zap.String("app", def.ID))
		m.defs[i] = def
		return nil
	}
	m.byID[def.ID] = len(m.defs)
	m.defs = append(m.defs, def)
	return nil
}

// Definitions lists registered apps in registration order.
func (m *Manager) Definitions() []Definition {
	return append([]Definition(nil), m.defs...)
}

// Launch opens a new window running app id and focuses it.
func (m *Manager) Launch(id string) (*Window, error) {
	i, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("launch %q: %w", id, ErrUnknownApp)
	}
	def := m.defs[i]
	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{
		id:      m.newID(),
		app:     def.ID,
		ctx:     ctx,
		cancel:  cancel,
		store:   m.store,
		manager: m,
	}
	if err := def.Entry(c); err != nil {
		c.teardown()
		return nil, fmt.Errorf("launch %q: %w", id, err)
	}
	w := &Window{def: def, container: c}
	m.windows = append(m.windows, w)
	events.Window.Open(c.id, def.ID)
	m.emit(bus.WindowOpened{ID: c.id, App: def.ID})
	return w, nil
}

// Focus raises window id to the top of the stack.
func (m *Manager) Focus(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := m.windows[i]
	m.windows = append(m.windows[:i], m.windows[i+1:]...)
	m.windows = append(m.windows, w)
	events.Window.Focus(id)
	return true
}

// Close tears window id down. Focus passes to the next window in the stack.
func (m *Manager) Close(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	w := m.windows[i]
	m.windows = append(m.windows[:i], m.windows[i+1:]...)
	w.container.teardown()
	events.Window.Close(id, w.def.ID)
	m.emit(bus.WindowClosed{ID: id, App: w.def.ID})
	return true
}

// CloseAll closes every window, top first.
func (m *Manager) CloseAll() {
	for len(m.windows) > 0 {
		m.Close(m.windows[len(m.windows)-1].ID())
	}
}

// Focused returns the top window, or nil.
func (m *Manager) Focused() *Window {
	if len(m.windows) == 0 {
		return nil
	}
	return m.windows[len(m.windows)-1]
}

// Windows returns the stack, bottom first.
func (m *Manager) Windows() []*Window {
	return append([]*Window(nil), m.windows...)
}

// Get returns window id.
func (m *Manager) Get(id string) (*Window, bool) {
	i := m.index(id)
	if i < 0 {
		return nil, false
	}
	return m.windows[i], true
}

func (m *Manager) index(id string) int {
	for i, w := range m.windows {
		if w.ID() == id {
			return i
		}
	}
	return -1
}

func (m *Manager) emit(p bus.Payload) {
	if m.bus != nil {
		m.bus.Emit(p)
	}
}
