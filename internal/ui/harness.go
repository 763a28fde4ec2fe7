package ui

import (
	"time"

	"github.com/atomicstack/mizu/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model programmatically for integration tests.
// Timers run on a manual scheduler advanced by the test.
type Harness struct {
	model *Model
	clock *timer.Manual
}

// NewHarness creates a harness for the provided model. clock may be nil
// when the model's scheduler is not manual.
func NewHarness(model *Model, clock *timer.Manual) *Harness {
	return &Harness{model: model, clock: clock}
}

// Init runs the model's Init and any commands it returns.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Advance moves the manual clock forward, running due timers.
func (h *Harness) Advance(d time.Duration) {
	if h.clock != nil {
		h.clock.Advance(d)
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				h.processCmd(c)
			}
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		cmd = next
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
