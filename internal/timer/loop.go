package timer

import "time"

// Loop calls step every interval until stopped. Start on a running loop is a
// no-op, so activate/deactivate cycles never stack loops.
type Loop struct {
	sched    Scheduler
	interval time.Duration
	step     func()
	handle   Handle
	running  bool
	frames   int
}

// NewLoop builds a stopped loop.
func NewLoop(s Scheduler, interval time.Duration, step func()) *Loop {
	return &Loop{sched: s, interval: interval, step: step}
}

// Start begins ticking. It returns false when the loop was already running.
func (l *Loop) Start() bool {
	if l.running {
		return false
	}
	l.running = true
	l.handle = l.sched.Schedule(l.interval, l.tick)
	return true
}

func (l *Loop) tick() {
	if !l.running {
		return
	}
	l.frames++
	if l.step != nil {
		l.step()
	}
	if l.running {
		l.handle = l.sched.Schedule(l.interval, l.tick)
	}
}

// Stop cancels the pending tick.
func (l *Loop) Stop() {
	l.running = false
	if l.handle != nil {
		l.handle.Cancel()
		l.handle = nil
	}
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	return l.running
}

// Frames counts completed steps since construction.
func (l *Loop) Frames() int {
	return l.frames
}
