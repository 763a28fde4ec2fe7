// Package scenes holds the shell's top-level scenes. Each scene owns its
// widgets, timers and bus subscriptions while active and drops all of them
// in Deactivate.
package scenes

import (
	"errors"
	"time"

	"github.com/atomicstack/mizu/internal/apps"
	"github.com/atomicstack/mizu/internal/kernel"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/store"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/theme"
	"github.com/atomicstack/mizu/internal/timer"
	"github.com/atomicstack/mizu/internal/widget"
)

// ErrNoSurface aborts activation of a scene that was never given a canvas.
var ErrNoSurface = errors.New("scene has no rendering surface")

// Env is what every scene shares.
type Env struct {
	Kernel     *kernel.Kernel
	Scheduler  timer.Scheduler
	Store      store.Store
	Apps       *apps.Manager
	Theme      *theme.Styles
	Language   string
	Countdown  int
	CursorStep int
	BootStep   time.Duration
	Now        func() time.Time
}

func (e *Env) styles() *theme.Styles {
	if e.Theme == nil {
		return theme.Default()
	}
	return e.Theme
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) text(key string) string {
	return label(e.Language, key)
}

// base carries the per-activation resources common to all scenes.
type base struct {
	env     *Env
	canvas  *surface.Canvas
	group   *bus.Group
	timers  *timer.Set
	active  bool
	swallow bool
}

func (b *base) SetContainer(c *surface.Canvas) {
	b.canvas = c
}

// begin acquires the activation resources. It fails without a surface so
// no half-built scene becomes current.
func (b *base) begin() error {
	if b.canvas == nil {
		return ErrNoSurface
	}
	b.group = bus.NewGroup(b.env.Kernel.Bus)
	b.timers = timer.NewSet(b.env.Scheduler)
	b.active = true
	b.swallow = false
	return nil
}

// end releases everything begin acquired. Safe to call twice.
func (b *base) end() {
	if b.group != nil {
		b.group.Close()
		b.group = nil
	}
	if b.timers != nil {
		b.timers.Stop()
		b.timers = nil
	}
	b.env.Kernel.Input.Reset()
	b.active = false
}

func (b *base) emit(p bus.Payload) {
	b.env.Kernel.Bus.Emit(p)
}

func (b *base) mode() widget.Mode {
	if b.env.Kernel.Input.NavigationMode() {
		return widget.ModeFocus
	}
	return widget.ModeFree
}

// bindPointer routes pointer events and mode changes to h. Keyboard
// navigation stays with the scene so it can intercept keys first.
func (b *base) bindPointer(h *widget.Host) {
	h.SetBounds(b.canvas.Width(), b.canvas.Height())
	h.SetStep(b.env.CursorStep, 1)
	h.SetMode(b.mode())
	bus.On(b.group, func(p bus.CursorMove) error {
		h.PointerMove(p.X, p.Y)
		return nil
	})
	bus.On(b.group, func(p bus.PointerDown) error {
		h.PointerDown(p.X, p.Y)
		return nil
	})
	bus.On(b.group, func(p bus.PointerUp) error {
		h.PointerUp(p.X, p.Y)
		return nil
	})
	bus.On(b.group, func(p bus.NavigationModeChanged) error {
		if p.Enabled {
			h.SetMode(widget.ModeFocus)
		} else {
			h.SetMode(widget.ModeFree)
		}
		return nil
	})
	bus.On(b.group, func(bus.KeyUp) error {
		b.swallow = false
		return nil
	})
}

// onResize runs fn after the host resized the canvas.
func (b *base) onResize(h *widget.Host, fn func()) {
	bus.On(b.group, func(bus.Resize) error {
		if h != nil {
			h.SetBounds(b.canvas.Width(), b.canvas.Height())
		}
		fn()
		return nil
	})
}

// stack lays out n buttons of width w centred in a column from top.
func stack(c *surface.Canvas, n, w, top int) []surface.Rect {
	rects := make([]surface.Rect, n)
	x := max((c.Width()-w)/2, 2)
	for i := range rects {
		rects[i] = surface.Rect{X: x, Y: top + i*3, W: w, H: 3}
	}
	return rects
}

// progressBar draws a width-cell bar filled to pct percent.
func progressBar(c *surface.Canvas, x, y, width, pct int, st *theme.Styles) {
	filled := width * min(max(pct, 0), 100) / 100
	for i := 0; i < width; i++ {
		if i < filled {
			c.Set(x+i, y, '█', st.Progress)
		} else {
			c.Set(x+i, y, '░', st.ProgressRest)
		}
	}
}
