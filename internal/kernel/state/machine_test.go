package state

import (
	"testing"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T, opts ...Option) (*Machine, *bus.Bus) {
	t.Helper()
	b := bus.New()
	m, err := New(b, opts...)
	require.NoError(t, err)
	return m, b
}

func TestTransitionTableIsExact(t *testing.T) {
	want := map[Name][]Name{
		Boot:       {Error, Menu},
		Menu:       {App, Boot, Settings},
		App:        {Boot, Fullscreen, Menu},
		Fullscreen: {App, Boot, Menu},
		Settings:   {Boot, Menu},
		Error:      {Boot},
	}
	m, _ := newMachine(t)
	require.Len(t, m.States(), len(want))
	for from, targets := range want {
		assert.Equal(t, targets, sortedTargets(m.transitions[from]), "targets from %s", from)
	}
}

func TestChangeStateRejectsIllegalTarget(t *testing.T) {
	m, b := newMachine(t)
	published := 0
	b.Subscribe(bus.StateChangedEvent, func(bus.Event) error {
		published++
		return nil
	})

	assert.False(t, m.ChangeState(Settings, nil))
	assert.Equal(t, Boot, m.Current())
	assert.False(t, m.ChangeState("nowhere", nil))
	assert.Equal(t, Boot, m.Current())
	assert.Zero(t, published)
}

func TestChangeStatePublishesTransition(t *testing.T) {
	m, b := newMachine(t)
	var got bus.StateChanged
	bus.On(b, func(p bus.StateChanged) error {
		got = p
		return nil
	})

	require.True(t, m.ChangeState(Menu, "payload"))
	assert.Equal(t, Menu, m.Current())
	assert.Equal(t, Boot, m.Previous())
	assert.Equal(t, bus.StateChanged{From: "boot", To: "menu", Data: "payload"}, got)
}

func TestCanTransitionToHasNoSideEffects(t *testing.T) {
	m, _ := newMachine(t)
	assert.True(t, m.CanTransitionTo(Menu))
	assert.True(t, m.CanTransitionTo(Error))
	assert.False(t, m.CanTransitionTo(App))
	assert.False(t, m.CanTransitionTo("ghost"))
	assert.Equal(t, Boot, m.Current())
}

func TestResetClearsData(t *testing.T) {
	m, _ := newMachine(t)
	require.True(t, m.ChangeState(Menu, nil))
	m.SetData("selected", 2)
	v, ok := m.Data("selected")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	m.Reset()
	assert.Equal(t, Boot, m.Current())
	_, ok = m.Data("selected")
	assert.False(t, ok)
}

func TestRevertUndoesLastTransitionSilently(t *testing.T) {
	m, b := newMachine(t)
	assert.False(t, m.Revert())

	require.True(t, m.ChangeState(Menu, nil))
	require.True(t, m.ChangeState(App, nil))
	published := 0
	bus.On(b, func(bus.StateChanged) error {
		published++
		return nil
	})

	require.True(t, m.Revert())
	assert.Equal(t, Menu, m.Current())
	assert.Equal(t, Boot, m.Previous())
	assert.Zero(t, published)

	require.True(t, m.Revert())
	assert.Equal(t, Boot, m.Current())
	assert.False(t, m.Revert())
}

func TestWithStatesExtendsTable(t *testing.T) {
	m, _ := newMachine(t, WithStates(map[Name][]Name{
		"maintenance": {Boot},
		Menu:          {"maintenance"},
	}))
	require.True(t, m.ChangeState(Menu, nil))
	assert.Equal(t, []Name{App, Boot, "maintenance", Settings}, m.AvailableStates())
	require.True(t, m.ChangeState("maintenance", nil))
	assert.Equal(t, "maintenance", m.Info().Description)
}

func TestWithStatesRejectsDanglingTarget(t *testing.T) {
	_, err := New(bus.New(), WithStates(map[Name][]Name{Menu: {"limbo"}}))
	assert.Error(t, err)
}

func TestInfoDescribesCurrentState(t *testing.T) {
	m, _ := newMachine(t)
	info := m.Info()
	assert.Equal(t, Boot, info.Name)
	assert.Equal(t, "System starting", info.Description)
	assert.Equal(t, []Name{Error, Menu}, info.Allowed)
}
