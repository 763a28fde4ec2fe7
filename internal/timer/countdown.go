package timer

import (
	"time"

	"github.com/atomicstack/mizu/internal/logging/events"
)

// CountdownHooks are the callbacks a Countdown drives. Any may be nil.
type CountdownHooks struct {
	// Tick runs on arm and after every interval with the remaining count.
	Tick func(remaining int)
	// Done runs once when the count reaches zero.
	Done func()
	// Cancelled runs once when an armed countdown is cancelled.
	Cancelled func()
}

// Countdown counts down once per interval and fires Done at zero. Cancel
// is idempotent: only the call that disarms runs the Cancelled hook.
type Countdown struct {
	name      string
	sched     Scheduler
	interval  time.Duration
	handle    Handle
	remaining int
	armed     bool
	hooks     CountdownHooks
}

// NewCountdown creates a disarmed countdown ticking every second.
func NewCountdown(name string, s Scheduler) *Countdown {
	return &Countdown{name: name, sched: s, interval: time.Second}
}

// SetInterval changes the tick length for future arms.
func (c *Countdown) SetInterval(d time.Duration) {
	if d > 0 {
		c.interval = d
	}
}

// Arm starts counting down from. An already armed countdown is replaced
// without running its Cancelled hook.
func (c *Countdown) Arm(from int, hooks CountdownHooks) {
	c.stop()
	if from <= 0 {
		if hooks.Done != nil {
			hooks.Done()
		}
		return
	}
	c.hooks = hooks
	c.remaining = from
	c.armed = true
	events.Timer.Arm(c.name, from)
	if hooks.Tick != nil {
		hooks.Tick(from)
	}
	c.schedule()
}

func (c *Countdown) schedule() {
	c.handle = c.sched.Schedule(c.interval, c.tick)
}

func (c *Countdown) tick() {
	if !c.armed {
		return
	}
	c.remaining--
	events.Timer.Tick(c.name, c.remaining)
	if c.remaining > 0 {
		if c.hooks.Tick != nil {
			c.hooks.Tick(c.remaining)
		}
		c.schedule()
		return
	}
	c.armed = false
	c.handle = nil
	done := c.hooks.Done
	c.hooks = CountdownHooks{}
	events.Timer.Fire(c.name)
	if done != nil {
		done()
	}
}

// Cancel disarms the countdown. It returns true only for the call that
// actually disarmed it.
func (c *Countdown) Cancel() bool {
	if !c.armed {
		return false
	}
	cancelled := c.hooks.Cancelled
	events.Timer.Cancel(c.name, c.remaining)
	c.stop()
	if cancelled != nil {
		cancelled()
	}
	return true
}

func (c *Countdown) stop() {
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
	c.armed = false
	c.hooks = CountdownHooks{}
}

// Armed reports whether the countdown is running.
func (c *Countdown) Armed() bool {
	return c.armed
}

// Remaining reports the current count; zero when disarmed.
func (c *Countdown) Remaining() int {
	if !c.armed {
		return 0
	}
	return c.remaining
}
