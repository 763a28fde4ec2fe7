package ui

import (
	"reflect"

	"github.com/atomicstack/mizu/internal/kernel"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging/events"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/theme"
	"github.com/atomicstack/mizu/internal/timer"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	windowTitle   = "mizu"
)

type msgHandler func(tea.Msg) tea.Cmd

// pump is implemented by schedulers that deliver callbacks as messages.
type pump interface {
	Fire(msg timer.FiredMsg) bool
	Drain() []tea.Cmd
}

// Options configures NewModel.
type Options struct {
	Kernel    *kernel.Kernel
	Scheduler timer.Scheduler
	// Styles returns the active style set; it is consulted on every frame
	// so theme changes apply immediately.
	Styles     func() *theme.Styles
	Width      int
	Height     int
	ShowFooter bool
	Mouse      bool
}

// Model implements the Bubble Tea model that hosts the shell.
type Model struct {
	kernel      *kernel.Kernel
	timers      timer.Scheduler
	styles      func() *theme.Styles
	canvas      *surface.Canvas
	help        help.Model
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	mouse       bool
	started     bool
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps k. Scenes must already be registered; NewModel hands them
// the canvas.
func NewModel(opts Options) *Model {
	m := &Model{
		kernel:     opts.Kernel,
		timers:     opts.Scheduler,
		styles:     opts.Styles,
		help:       help.New(),
		showFooter: opts.ShowFooter,
		mouse:      opts.Mouse,
		width:      defaultWidth,
		height:     defaultHeight,
	}
	if m.styles == nil {
		m.styles = theme.Default
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help.Width = m.width
	m.canvas = surface.New(m.width, m.sceneHeight())
	bus.On(m.kernel.Bus, func(bus.SystemShutdown) error {
		m.quitting = true
		return nil
	})
	m.kernel.Initialize(m.canvas)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts the kernel, which
// activates the boot scene.
func (m *Model) Init() tea.Cmd {
	m.start()
	return m.finishUpdate([]tea.Cmd{tea.SetWindowTitle(windowTitle)})
}

func (m *Model) start() {
	if m.started {
		return
	}
	m.started = true
	m.kernel.Start()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(timer.FiredMsg{}):    m.handleFiredMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	if m.kernel.Closed() {
		return nil
	}
	m.kernel.Input.HandleKey(msg.(tea.KeyMsg))
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	if !m.mouse || m.kernel.Closed() {
		return nil
	}
	mouse := msg.(tea.MouseMsg)
	if mouse.Y >= m.canvas.Height() {
		return nil
	}
	m.kernel.Input.HandleMouse(mouse)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth && size.Width > 0 {
		m.width = size.Width
	}
	if !m.fixedHeight && size.Height > 0 {
		m.height = size.Height
	}
	m.help.Width = m.width
	h := m.sceneHeight()
	if m.width == m.canvas.Width() && h == m.canvas.Height() {
		return nil
	}
	m.canvas.Resize(m.width, h)
	events.View.Resize(m.width, h)
	if !m.kernel.Closed() {
		m.kernel.Bus.Emit(bus.Resize{Width: m.width, Height: h})
	}
	return nil
}

func (m *Model) handleFiredMsg(msg tea.Msg) tea.Cmd {
	if p, ok := m.timers.(pump); ok {
		p.Fire(msg.(timer.FiredMsg))
	}
	return nil
}

// finishUpdate collects timer commands queued during the update and quits
// once the kernel has shut down.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if p, ok := m.timers.(pump); ok {
		cmds = append(cmds, p.Drain()...)
	}
	if m.quitting {
		events.View.Quit(m.kernel.Scenes.CurrentName())
		return tea.Quit
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) sceneHeight() int {
	if m.showFooter {
		return max(m.height-1, 1)
	}
	return m.height
}

// Quitting reports whether the program is shutting down.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Canvas exposes the shared rendering surface.
func (m *Model) Canvas() *surface.Canvas {
	return m.canvas
}

// Kernel exposes the hosted kernel.
func (m *Model) Kernel() *kernel.Kernel {
	return m.kernel
}
