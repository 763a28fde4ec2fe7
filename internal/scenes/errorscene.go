package scenes

import (
	"errors"
	"fmt"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/atomicstack/mizu/internal/widget"
	"github.com/muesli/reflow/wordwrap"
)

// Failure shows the error that stopped the shell and offers a restart.
type Failure struct {
	base
	err     error
	host    *widget.Host
	restart *widget.Button
}

func NewFailure(env *Env) *Failure {
	return &Failure{base: base{env: env}}
}

// Activate takes the error to show; anything else falls back to the
// kernel's last error.
func (s *Failure) Activate(data any) error {
	if err := s.begin(); err != nil {
		return err
	}
	switch v := data.(type) {
	case error:
		s.err = v
	case string:
		s.err = errors.New(v)
	default:
		s.err = s.env.Kernel.LastError()
	}
	if s.err == nil {
		s.err = errors.New("unknown system error")
	}
	s.host = widget.NewHost("error", s.mode())
	s.restart = widget.NewButton("restart", s.env.text("restart"), widget.Rect{}, s.reboot)
	s.layout()
	s.host.SetWidgets(s.restart)
	s.bindPointer(s.host)
	s.onResize(s.host, s.layout)
	bus.On(s.group, func(p bus.Action) error {
		if p.Type == bus.Positive {
			s.host.ActivateWidget(s.restart)
		}
		return nil
	})
	return nil
}

func (s *Failure) Deactivate() {
	s.end()
}

// Err returns the error on display.
func (s *Failure) Err() error {
	return s.err
}

func (s *Failure) reboot() {
	s.emit(bus.ChangeScene{Scene: "boot"})
}

func (s *Failure) layout() {
	r := stack(s.canvas, 1, 20, s.canvas.Height()-5)[0]
	s.restart.SetBounds(r)
}

func (s *Failure) Render(c *surface.Canvas) {
	st := s.env.styles()
	ws := st.Widgets()
	c.Fill(c.Bounds(), ' ', st.Background)
	c.TextCenter(1, "✖ "+s.env.text("error"), st.Error)
	msg := wordwrap.String(fmt.Sprint(s.err), max(c.Width()-6, 10))
	c.Blit(surface.Rect{X: 3, Y: 3, W: max(c.Width()-6, 0), H: max(c.Height()-9, 0)}, msg, st.Text)
	widget.RenderButton(c, s.restart, ws)
	widget.RenderCursor(c, s.host.Cursor(), ws)
}

func (s *Failure) Hints() []string {
	return []string{"enter restart"}
}
