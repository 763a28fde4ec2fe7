// Package timer centralises deferred work for scenes: one-shot delays, the
// auto-default countdown and the redraw loop. Everything runs through a
// Scheduler so the host decides how time passes.
package timer

import (
	"sort"
	"time"
)

// Handle controls a scheduled callback.
type Handle interface {
	// Cancel stops the callback. It reports true only when this call
	// prevented a pending run.
	Cancel() bool
	// Active reports whether the callback is still pending.
	Active() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// Manual is a Scheduler driven by a virtual clock. Callbacks only run
// inside Advance, on the caller's goroutine.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualEntry
}

type manualEntry struct {
	owner *Manual
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Schedule(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	e := &manualEntry{owner: m, at: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, e)
	return e
}

// Now reports elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports callbacks that have not run or been cancelled.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d, running due callbacks in time order.
// Callbacks scheduled while advancing run too when they fall inside the
// window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		m.remove(next)
		next.done = true
		next.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(target time.Duration) *manualEntry {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at < m.pending[j].at
	})
	if m.pending[0].at > target {
		return nil
	}
	return m.pending[0]
}

func (m *Manual) remove(e *manualEntry) {
	for i, p := range m.pending {
		if p == e {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

func (e *manualEntry) Cancel() bool {
	if e.done {
		return false
	}
	e.done = true
	e.owner.remove(e)
	return true
}

func (e *manualEntry) Active() bool {
	return !e.done
}
