package timer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered to the Bubble Tea program when a scheduled
// callback is due. The host passes it back to Tea.Fire.
type FiredMsg struct {
	ID uint64
}

// Tea schedules callbacks as tea.Tick commands. Callbacks run inside the
// program's Update, so scenes never see concurrent calls.
type Tea struct {
	seq    uint64
	live   map[uint64]*teaEntry
	queued []tea.Cmd
}

type teaEntry struct {
	owner *Tea
	id    uint64
	fn    func()
}

// NewTea returns an empty scheduler.
func NewTea() *Tea {
	return &Tea{live: make(map[uint64]*teaEntry)}
}

func (t *Tea) Schedule(d time.Duration, fn func()) Handle {
	t.seq++
	id := t.seq
	e := &teaEntry{owner: t, id: id, fn: fn}
	t.live[id] = e
	t.queued = append(t.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return FiredMsg{ID: id}
	}))
	return e
}

// Fire runs the callback behind msg unless it was cancelled.
func (t *Tea) Fire(msg FiredMsg) bool {
	e, ok := t.live[msg.ID]
	if !ok {
		return false
	}
	delete(t.live, msg.ID)
	e.fn()
	return true
}

// Drain hands over the tick commands queued since the last call.
func (t *Tea) Drain() []tea.Cmd {
	cmds := t.queued
	t.queued = nil
	return cmds
}

// Pending reports callbacks still waiting to fire.
func (t *Tea) Pending() int {
	return len(t.live)
}

func (e *teaEntry) Cancel() bool {
	if _, ok := e.owner.live[e.id]; !ok {
		return false
	}
	delete(e.owner.live, e.id)
	return true
}

func (e *teaEntry) Active() bool {
	_, ok := e.owner.live[e.id]
	return ok
}
