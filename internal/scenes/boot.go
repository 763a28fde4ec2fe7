package scenes

import (
	"fmt"
	"time"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
)

type bootStep struct {
	progress int
	status   string
}

var bootSteps = []bootStep{
	{10, "Initializing kernel..."},
	{25, "Loading event bus..."},
	{40, "Starting state machine..."},
	{60, "Mounting scenes..."},
	{80, "Binding input devices..."},
	{95, "Preparing interface..."},
	{100, "Boot complete"},
}

// bootHandoff is the pause between the last step and leaving for the menu.
const bootHandoff = 500 * time.Millisecond

// Boot plays the loading sequence and then hands off to the menu.
type Boot struct {
	base
	step     int
	progress int
	status   string
	complete bool
	handoff  bool
}

func NewBoot(env *Env) *Boot {
	return &Boot{base: base{env: env}}
}

func (s *Boot) Activate(any) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.step = 0
	s.progress = 0
	s.status = s.env.text("starting")
	s.complete = false
	s.handoff = false

	bus.On(s.group, func(p bus.Action) error {
		if p.Type == bus.Positive {
			s.skip()
		}
		return nil
	})
	s.advance()
	return nil
}

func (s *Boot) Deactivate() {
	s.end()
}

func (s *Boot) interval() time.Duration {
	if s.env.BootStep > 0 {
		return s.env.BootStep
	}
	return 300 * time.Millisecond
}

func (s *Boot) advance() {
	if !s.active || s.complete {
		return
	}
	if s.step >= len(bootSteps) {
		s.finish()
		return
	}
	st := bootSteps[s.step]
	s.progress = st.progress
	s.status = st.status
	s.step++
	s.timers.After(s.interval(), s.advance)
}

func (s *Boot) skip() {
	if s.complete {
		return
	}
	s.step = len(bootSteps)
	s.progress = 100
	s.timers.Stop()
	s.finish()
}

func (s *Boot) finish() {
	if s.complete {
		return
	}
	s.complete = true
	s.progress = 100
	s.status = s.env.text("ready")
	s.timers.After(bootHandoff, func() {
		if s.handoff || !s.active {
			return
		}
		s.handoff = true
		s.emit(bus.ChangeScene{Scene: "menu"})
	})
}

// Progress reports the percentage shown on the bar.
func (s *Boot) Progress() int {
	return s.progress
}

// Status reports the current step text.
func (s *Boot) Status() string {
	return s.status
}

func (s *Boot) Render(c *surface.Canvas) {
	st := s.env.styles()
	c.Fill(c.Bounds(), ' ', st.Background)
	mid := c.Height() / 2
	c.TextCenter(mid-3, "≈ mizu ≈", st.Title)
	width := min(max(c.Width()-8, 10), 40)
	x := max((c.Width()-width)/2, 0)
	progressBar(c, x, mid-1, width, s.progress, st)
	c.TextCenter(mid, fmt.Sprintf("%d%%", s.progress), st.Text)
	c.TextCenter(mid+2, s.status, st.Muted)
}

func (s *Boot) Hints() []string {
	return []string{"enter skip"}
}
