package timer

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualRunsCallbacksInTimeOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.Schedule(2*time.Second, func() { order = append(order, "b") })
	m.Schedule(time.Second, func() {
		order = append(order, "a")
		m.Schedule(500*time.Millisecond, func() { order = append(order, "a2") })
	})
	m.Schedule(2*time.Second, func() { order = append(order, "c") })
	cancelled := m.Schedule(time.Second, func() { order = append(order, "never") })
	require.True(t, cancelled.Cancel())
	require.False(t, cancelled.Cancel())

	m.Advance(3 * time.Second)
	assert.Equal(t, []string{"a", "a2", "b", "c"}, order)
	assert.Equal(t, 3*time.Second, m.Now())
	assert.Zero(t, m.Pending())
}

func TestCountdownCancelledAfterThreeTicksNeverFires(t *testing.T) {
	m := NewManual()
	c := NewCountdown("menu", m)
	label := "Desktop"
	fired := 0
	cancels := 0
	c.Arm(10, CountdownHooks{
		Tick:      func(n int) { label = "Desktop (" + strconv.Itoa(n) + ")" },
		Done:      func() { fired++ },
		Cancelled: func() { cancels++; label = "Desktop" },
	})
	assert.Equal(t, "Desktop (10)", label)

	m.Advance(3 * time.Second)
	assert.Equal(t, "Desktop (7)", label)
	assert.Equal(t, 7, c.Remaining())

	assert.True(t, c.Cancel())
	assert.False(t, c.Cancel())
	m.Advance(20 * time.Second)

	assert.Equal(t, "Desktop", label)
	assert.Zero(t, fired)
	assert.Equal(t, 1, cancels)
	assert.False(t, c.Armed())
	assert.Zero(t, m.Pending())
}

func TestCountdownFiresOnceAtZero(t *testing.T) {
	m := NewManual()
	c := NewCountdown("menu", m)
	var ticks []int
	fired := 0
	c.Arm(3, CountdownHooks{
		Tick: func(n int) { ticks = append(ticks, n) },
		Done: func() { fired++ },
	})
	m.Advance(10 * time.Second)
	assert.Equal(t, []int{3, 2, 1}, ticks)
	assert.Equal(t, 1, fired)
	assert.False(t, c.Cancel())
}

func TestCountdownRearmReplacesPrevious(t *testing.T) {
	m := NewManual()
	c := NewCountdown("menu", m)
	cancels := 0
	c.Arm(5, CountdownHooks{Cancelled: func() { cancels++ }})
	c.Arm(2, CountdownHooks{})
	assert.Equal(t, 1, m.Pending())
	assert.Zero(t, cancels)
	assert.Equal(t, 2, c.Remaining())
}

func TestLoopDoesNotStack(t *testing.T) {
	m := NewManual()
	steps := 0
	l := NewLoop(m, time.Second, func() { steps++ })
	require.True(t, l.Start())
	require.False(t, l.Start())
	m.Advance(3 * time.Second)
	assert.Equal(t, 3, steps)

	l.Stop()
	m.Advance(3 * time.Second)
	assert.Equal(t, 3, steps)

	require.True(t, l.Start())
	require.False(t, l.Start())
	m.Advance(time.Second)
	assert.Equal(t, 4, steps)
	assert.Equal(t, 1, m.Pending())
}

func TestSetStopCancelsEverything(t *testing.T) {
	m := NewManual()
	s := NewSet(m)
	ran := 0
	s.After(time.Second, func() { ran++ })
	s.After(2*time.Second, func() { ran++ })
	assert.Equal(t, 2, s.Active())
	s.Stop()
	m.Advance(5 * time.Second)
	assert.Zero(t, ran)
}

func TestTeaSchedulerIgnoresCancelledTicks(t *testing.T) {
	s := NewTea()
	ran := 0
	keep := s.Schedule(time.Millisecond, func() { ran++ })
	drop := s.Schedule(time.Millisecond, func() { ran += 10 })
	cmds := s.Drain()
	require.Len(t, cmds, 2)
	assert.Empty(t, s.Drain())

	require.True(t, drop.Cancel())
	for _, cmd := range cmds {
		msg, ok := cmd().(FiredMsg)
		require.True(t, ok)
		s.Fire(msg)
	}
	assert.Equal(t, 1, ran)
	assert.False(t, keep.Active())
	assert.Zero(t, s.Pending())
}

var _ tea.Msg = FiredMsg{}
