package timer

import "time"

// Set tracks the one-shot delays a scene owns so teardown is one call.
type Set struct {
	sched   Scheduler
	handles []Handle
}

// NewSet creates an empty set on s.
func NewSet(s Scheduler) *Set {
	return &Set{sched: s}
}

// After schedules fn and remembers its handle.
func (s *Set) After(d time.Duration, fn func()) Handle {
	h := s.sched.Schedule(d, fn)
	kept := s.handles[:0]
	for _, old := range s.handles {
		if old.Active() {
			kept = append(kept, old)
		}
	}
	s.handles = append(kept, h)
	return h
}

// Active counts pending delays.
func (s *Set) Active() int {
	n := 0
	for _, h := range s.handles {
		if h.Active() {
			n++
		}
	}
	return n
}

// Stop cancels every pending delay.
func (s *Set) Stop() {
	for _, h := range s.handles {
		h.Cancel()
	}
	s.handles = nil
}
