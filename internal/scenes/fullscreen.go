package scenes

import (
	"github.com/atomicstack/mizu/internal/apps"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/kernel/input"
	"github.com/atomicstack/mizu/internal/surface"
)

// Fullscreen shows one window over the whole surface. Every key but the
// reserved ones goes to the window; esc and ctrl+f return to the desktop.
type Fullscreen struct {
	base
	window *apps.Window
}

func NewFullscreen(env *Env) *Fullscreen {
	return &Fullscreen{base: base{env: env}}
}

// Activate takes the window ID to maximize. Without one it falls back to
// the focused window; with no window at all it returns to the desktop.
func (s *Fullscreen) Activate(data any) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.window = nil
	if id, ok := data.(string); ok {
		if w, found := s.env.Apps.Get(id); found {
			s.window = w
			s.env.Apps.Focus(id)
		}
	}
	if s.window == nil {
		s.window = s.env.Apps.Focused()
	}
	if s.window == nil {
		s.timers.After(0, s.leave)
		return nil
	}

	keys := s.env.Kernel.Input.KeyMap()
	bus.On(s.group, func(p bus.KeyDown) error {
		if reserved(keys, p.Key) || input.Matches(p.Key, keys.Negative) {
			return nil
		}
		s.swallow = true
		if p.Key == closeKey {
			s.env.Apps.Close(s.window.ID())
			return nil
		}
		s.window.HandleKey(nativeKey(p))
		return nil
	})
	bus.On(s.group, func(p bus.Action) error {
		if p.Type == bus.Fullscreen || p.Type == bus.Negative {
			s.leave()
		}
		return nil
	})
	bus.On(s.group, func(p bus.PointerDown) error {
		body := inner(s.canvas.Bounds())
		if body.Contains(p.X, p.Y) {
			s.window.HandlePointer(p.X-body.X, p.Y-body.Y)
		}
		return nil
	})
	bus.On(s.group, func(p bus.WindowClosed) error {
		if s.window != nil && p.ID == s.window.ID() {
			s.leave()
		}
		return nil
	})
	bus.On(s.group, func(bus.KeyUp) error {
		s.swallow = false
		return nil
	})
	return nil
}

func (s *Fullscreen) Deactivate() {
	s.window = nil
	s.end()
}

// Window returns the maximized window.
func (s *Fullscreen) Window() *apps.Window {
	return s.window
}

func (s *Fullscreen) leave() {
	if s.active {
		s.emit(bus.ChangeScene{Scene: "app"})
	}
}

func (s *Fullscreen) Render(c *surface.Canvas) {
	st := s.env.styles()
	c.Fill(c.Bounds(), ' ', st.Background)
	if s.window == nil {
		return
	}
	drawWindow(c, c.Bounds(), s.window, true, st)
}

func (s *Fullscreen) Hints() []string {
	return []string{"esc restore", "ctrl+f restore", closeKey + " close"}
}
