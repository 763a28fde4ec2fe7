package scenes

import (
	"fmt"
	"time"

	"github.com/atomicstack/mizu/internal/apps"
	"github.com/atomicstack/mizu/internal/kernel"
	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/timer"
	"github.com/atomicstack/mizu/internal/widget"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"
)

const (
	iconWidth  = 16
	iconHeight = 3
	iconTop    = 3
	closeKey   = "ctrl+q"
	filterKey  = "/"
)

// Desktop is the app scene: launcher icons, the window stack and the
// taskbar.
type Desktop struct {
	base
	host      *widget.Host
	filter    textinput.Model
	filtering bool
	typing    bool
	icons     []*widget.Button
	tabs      []*widget.Button
	shown     []apps.Definition
	columns   int
	clock     string
	loop      *timer.Loop
	notice    string
}

func NewDesktop(env *Env) *Desktop {
	s := &Desktop{base: base{env: env}}
	s.loop = timer.NewLoop(env.Scheduler, time.Second, s.tick)
	return s
}

func (s *Desktop) Activate(any) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.filter = textinput.New()
	s.filter.Prompt = ""
	s.filter.CharLimit = 32
	s.filtering = false
	s.typing = false
	s.notice = ""
	s.host = widget.NewHost("desktop", s.mode())
	s.bindPointer(s.host)
	s.refresh()
	s.onResize(s.host, s.refresh)

	bus.On(s.group, s.keyDown)
	bus.On(s.group, func(p bus.Navigate) error {
		if !s.swallow {
			s.host.Navigate(p.Direction)
		}
		return nil
	})
	bus.On(s.group, s.action)
	bus.On(s.group, s.pointerDown)
	bus.On(s.group, func(bus.WindowOpened) error {
		s.refresh()
		return nil
	})
	bus.On(s.group, func(bus.WindowClosed) error {
		if s.env.Apps.Focused() == nil {
			s.typing = false
		}
		s.refresh()
		return nil
	})
	s.env.Kernel.Input.SetControls(s.control)

	s.tick()
	s.loop.Start()
	return nil
}

func (s *Desktop) Deactivate() {
	s.loop.Stop()
	s.filter.Blur()
	s.end()
}

func (s *Desktop) tick() {
	s.clock = s.env.now().Format("15:04:05")
}

// Clock returns the time shown on the taskbar.
func (s *Desktop) Clock() string {
	return s.clock
}

// Typing reports whether the focused window owns the keyboard.
func (s *Desktop) Typing() bool {
	return s.typing
}

// Filtering reports whether the launcher filter is open.
func (s *Desktop) Filtering() bool {
	return s.filtering
}

// Host exposes the widget host.
func (s *Desktop) Host() *widget.Host {
	return s.host
}

// Shown lists the apps the launcher currently offers.
func (s *Desktop) Shown() []apps.Definition {
	return s.shown
}

func (s *Desktop) keyDown(p bus.KeyDown) error {
	if reserved(s.env.Kernel.Input.KeyMap(), p.Key) {
		return nil
	}
	switch {
	case s.filtering:
		s.filterKey(p)
	case s.typing:
		s.windowKey(p)
	case p.Key == filterKey:
		s.swallow = true
		s.filtering = true
		s.filter.Focus()
	case p.Key == closeKey:
		s.swallow = true
		s.closeFocused()
	}
	return nil
}

func (s *Desktop) filterKey(p bus.KeyDown) {
	switch p.Key {
	case "up", "down", "left", "right", "tab", "shift+tab":
		return
	case "esc":
		s.swallow = true
		s.closeFilter()
	case "enter":
		s.swallow = true
		s.launchSelected()
	default:
		s.swallow = true
		s.filter, _ = s.filter.Update(nativeKey(p))
		s.refresh()
		if best := apps.BestMatch(s.shown, s.filter.Value()); best >= 0 && s.host.Mode() == widget.ModeFocus {
			s.host.Focus(best)
		}
	}
}

func (s *Desktop) windowKey(p bus.KeyDown) {
	s.swallow = true
	w := s.env.Apps.Focused()
	if w == nil {
		s.typing = false
		return
	}
	switch p.Key {
	case "esc":
		s.typing = false
	case closeKey:
		s.closeFocused()
	default:
		w.HandleKey(nativeKey(p))
	}
}

func (s *Desktop) action(p bus.Action) error {
	if s.swallow {
		return nil
	}
	switch p.Type {
	case bus.Positive:
		s.host.Activate()
	case bus.Negative:
		s.emit(bus.ChangeScene{Scene: "menu"})
	case bus.Fullscreen:
		if w := s.env.Apps.Focused(); w != nil {
			s.emit(bus.ChangeScene{Scene: "fullscreen", Data: w.ID()})
		}
	}
	return nil
}

// pointerDown forwards clicks inside the top window's body and hands it
// the keyboard.
func (s *Desktop) pointerDown(p bus.PointerDown) error {
	w := s.env.Apps.Focused()
	if w == nil {
		return nil
	}
	body := inner(s.panel())
	if !body.Contains(p.X, p.Y) {
		return nil
	}
	s.typing = true
	w.HandlePointer(p.X-body.X, p.Y-body.Y)
	return nil
}

func (s *Desktop) control(x, y int) (string, bool) {
	h, w := s.canvas.Height(), s.canvas.Width()
	if y != h-1 {
		return "", false
	}
	switch {
	case x < 6:
		return kernel.ControlMenu, true
	case x >= w-7:
		return kernel.ControlShutdown, true
	}
	return "", false
}

func (s *Desktop) closeFilter() {
	s.filtering = false
	s.filter.Reset()
	s.filter.Blur()
	s.refresh()
}

func (s *Desktop) launchSelected() {
	id := ""
	if f := s.host.Focused(); f != nil && s.host.Mode() == widget.ModeFocus {
		for i, b := range s.icons {
			if widget.Widget(b) == f {
				id = s.shown[i].ID
			}
		}
	}
	if id == "" {
		if best := apps.BestMatch(s.shown, s.filter.Value()); best >= 0 {
			id = s.shown[best].ID
		}
	}
	s.closeFilter()
	if id != "" {
		s.launch(id)
	}
}

func (s *Desktop) launch(id string) {
	if _, err := s.env.Apps.Launch(id); err != nil {
		s.notice = err.Error()
		logging.Warn("app launch failed", zap.String("app", id), zap.Error(err))
		return
	}
	s.notice = ""
	s.typing = true
}

func (s *Desktop) closeFocused() {
	if w := s.env.Apps.Focused(); w != nil {
		s.env.Apps.Close(w.ID())
	}
}

func (s *Desktop) selectWindow(id string) {
	if s.env.Apps.Focus(id) {
		s.typing = true
		s.refresh()
	}
}

// refresh rebuilds icons and window tabs, keeping the focus position.
func (s *Desktop) refresh() {
	if s.host == nil {
		return
	}
	w := s.canvas.Width()
	s.columns = max((w-4)/(iconWidth+2), 1)
	s.shown = apps.Filter(s.env.Apps.Definitions(), s.filter.Value())
	s.icons = s.icons[:0]
	for i, def := range s.shown {
		id := def.ID
		r := widget.Rect{
			X: 2 + (i%s.columns)*(iconWidth+2),
			Y: iconTop + (i/s.columns)*iconHeight,
			W: iconWidth,
			H: iconHeight,
		}
		s.icons = append(s.icons, widget.NewButton("app:"+id, def.Icon+" "+def.Name, r, func() { s.launch(id) }))
	}
	s.tabs = s.tabs[:0]
	x := 1
	for _, win := range s.env.Apps.Windows() {
		id := win.ID()
		label := win.Title()
		r := widget.Rect{X: x, Y: s.canvas.Height() - 2, W: len([]rune(label)) + 4, H: 1}
		x += r.W + 1
		s.tabs = append(s.tabs, widget.NewButton("win:"+id, label, r, func() { s.selectWindow(id) }))
	}

	idx := s.host.FocusIndex()
	ws := make([]widget.Widget, 0, len(s.icons)+len(s.tabs))
	for _, b := range s.icons {
		ws = append(ws, b)
	}
	for _, b := range s.tabs {
		ws = append(ws, b)
	}
	s.host.SetColumns(s.columns)
	s.host.SetWidgets(ws...)
	if idx > 0 && len(ws) > 0 && s.host.Mode() == widget.ModeFocus {
		s.host.Focus(min(idx, len(ws)-1))
	}
}

// panel is the area the top window occupies.
func (s *Desktop) panel() surface.Rect {
	rows := (len(s.icons) + s.columns - 1) / max(s.columns, 1)
	top := iconTop + max(rows, 1)*iconHeight + 1
	bottom := s.canvas.Height() - 3
	return surface.Rect{X: 1, Y: top, W: max(s.canvas.Width()-2, 0), H: max(bottom-top, 0)}
}

func (s *Desktop) Render(c *surface.Canvas) {
	st := s.env.styles()
	ws := st.Widgets()
	c.Fill(c.Bounds(), ' ', st.Background)
	c.Text(1, 0, "≈ mizu desktop", st.Title)

	prompt := filterKey + " " + s.env.text("launch") + " ▸ "
	c.Text(1, 1, prompt, st.FilterPrompt)
	query := s.filter.Value()
	if s.filtering {
		query += "_"
	}
	c.Text(1+len([]rune(prompt)), 1, query, st.Filter)
	if s.notice != "" {
		c.Text(max(c.Width()-len([]rune(s.notice))-1, 0), 1, s.notice, st.Error)
	}

	for _, b := range s.icons {
		widget.RenderButton(c, b, ws)
	}
	if len(s.icons) == 0 {
		c.Text(2, iconTop+1, "no matching apps", st.Muted)
	}

	if w := s.env.Apps.Focused(); w != nil {
		drawWindow(c, s.panel(), w, s.typing, st)
	} else {
		p := s.panel()
		c.TextCenter(p.Y+p.H/2, "no open windows", st.Muted)
	}
	for _, b := range s.tabs {
		widget.RenderItem(c, b, ws)
	}

	y := c.Height() - 1
	c.Fill(surface.Rect{X: 0, Y: y, W: c.Width(), H: 1}, ' ', st.Taskbar)
	c.Text(0, y, "[Menu]", st.Taskbar)
	status := fmt.Sprintf("%d open  %s", len(s.env.Apps.Windows()), s.clock)
	c.Text(max(c.Width()-8-len([]rune(status)), 7), y, status, st.Taskbar)
	c.Text(max(c.Width()-7, 0), y, "[Power]", st.Taskbar)

	widget.RenderCursor(c, s.host.Cursor(), ws)
}

func (s *Desktop) Hints() []string {
	switch {
	case s.filtering:
		return []string{"enter launch", "esc cancel"}
	case s.typing:
		return []string{"esc release", closeKey + " close", "ctrl+f fullscreen"}
	}
	return []string{filterKey + " search", closeKey + " close", "esc menu"}
}
