package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/mizu/internal/format/table"
	"github.com/atomicstack/mizu/internal/kernel"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/timer"
	"github.com/atomicstack/mizu/internal/widget"
)

const menuButtonWidth = 26

// Menu is the main menu. The Desktop entry carries an auto-select
// countdown that any other interaction cancels.
type Menu struct {
	base
	host      *widget.Host
	desktop   *widget.Button
	items     []*widget.Button
	countdown *timer.Countdown
}

func NewMenu(env *Env) *Menu {
	return &Menu{base: base{env: env}}
}

func (s *Menu) Activate(any) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.countdown = timer.NewCountdown("menu", s.env.Scheduler)
	s.host = widget.NewHost("menu", s.mode())
	s.build()
	s.bindPointer(s.host)
	s.onResize(s.host, s.layout)

	bus.On(s.group, func(p bus.Navigate) error {
		s.host.Navigate(p.Direction)
		return nil
	})
	bus.On(s.group, func(p bus.Action) error {
		switch p.Type {
		case bus.Positive:
			s.host.Activate()
		case bus.Negative:
			s.countdown.Cancel()
		}
		return nil
	})
	s.host.OnInteract(s.interacted)
	s.arm()
	return nil
}

func (s *Menu) Deactivate() {
	if s.countdown != nil {
		s.countdown.Cancel()
	}
	s.end()
}

func (s *Menu) build() {
	t := s.env.text
	s.desktop = widget.NewButton("desktop", t("desktop"), widget.Rect{}, func() {
		s.emit(bus.ChangeScene{Scene: "app"})
	})
	s.items = []*widget.Button{
		s.desktop,
		widget.NewButton("settings", t("settings"), widget.Rect{}, func() {
			s.emit(bus.ChangeScene{Scene: "settings"})
		}),
		widget.NewButton("restart", t("restart"), widget.Rect{}, func() {
			s.emit(bus.ButtonAction{Action: kernel.ControlRestart})
		}),
		widget.NewButton("shutdown", t("shutdown"), widget.Rect{}, func() {
			s.emit(bus.ButtonAction{Action: kernel.ControlShutdown})
		}),
	}
	s.layout()
	ws := make([]widget.Widget, len(s.items))
	for i, b := range s.items {
		ws[i] = b
	}
	s.host.SetWidgets(ws...)
}

func (s *Menu) layout() {
	rects := stack(s.canvas, len(s.items), menuButtonWidth, 4)
	for i, b := range s.items {
		b.SetBounds(rects[i])
	}
}

func (s *Menu) arm() {
	if s.env.Countdown <= 0 {
		return
	}
	base := s.env.text("desktop")
	s.countdown.Arm(s.env.Countdown, timer.CountdownHooks{
		Tick: func(n int) {
			s.desktop.SetLabel(fmt.Sprintf("%s (%d)", base, n))
		},
		Done: func() {
			s.desktop.SetLabel(base)
			s.host.ActivateWidget(s.desktop)
		},
		Cancelled: func() {
			s.desktop.SetLabel(base)
		},
	})
}

// interacted cancels the countdown for anything except an explicit
// activation of the countdown's own target.
func (s *Menu) interacted(i widget.Interaction) {
	if !s.countdown.Armed() {
		return
	}
	if i.Kind == widget.InteractActivate && i.Target == widget.Widget(s.desktop) {
		return
	}
	s.countdown.Cancel()
}

// Countdown exposes the auto-select timer.
func (s *Menu) Countdown() *timer.Countdown {
	return s.countdown
}

// Host exposes the widget host.
func (s *Menu) Host() *widget.Host {
	return s.host
}

func (s *Menu) statusLines() []string {
	st := s.env.Kernel.Status()
	mode := "free"
	if s.env.Kernel.Input.NavigationMode() {
		mode = "focus"
	}
	windows := 0
	if s.env.Apps != nil {
		windows = len(s.env.Apps.Windows())
	}
	return table.KeyValue([][2]string{
		{"state", st.SystemState},
		{"scene", st.CurrentScene},
		{"scenes", strings.Join(st.RegisteredScenes, " ")},
		{"input", mode},
		{"windows", strconv.Itoa(windows)},
		{"clock", s.env.now().Format("15:04")},
	})
}

func (s *Menu) Render(c *surface.Canvas) {
	st := s.env.styles()
	c.Fill(c.Bounds(), ' ', st.Background)
	c.TextCenter(1, "≈ mizu ≈", st.Title)
	c.TextCenter(2, "main menu", st.Muted)
	ws := st.Widgets()
	for _, b := range s.items {
		widget.RenderButton(c, b, ws)
	}
	lines := s.statusLines()
	top := c.Height() - len(lines) - 1
	if below := 4 + len(s.items)*3; top < below {
		top = below
	}
	for i, line := range lines {
		c.Text(2, top+i, line, st.Muted)
	}
	widget.RenderCursor(c, s.host.Cursor(), ws)
}

func (s *Menu) Hints() []string {
	if s.countdown != nil && s.countdown.Armed() {
		return []string{"navigate to cancel auto-start"}
	}
	return nil
}
