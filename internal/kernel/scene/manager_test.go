package scene

import (
	"errors"
	"testing"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	name        string
	log         *[]string
	activateErr error
	container   *surface.Canvas
	initialized int
	lastData    any
}

func (f *fakeScene) Activate(data any) error {
	*f.log = append(*f.log, f.name+".activate")
	f.lastData = data
	return f.activateErr
}

func (f *fakeScene) Deactivate() {
	*f.log = append(*f.log, f.name+".deactivate")
}

func (f *fakeScene) Initialize() {
	f.initialized++
}

func (f *fakeScene) SetContainer(c *surface.Canvas) {
	f.container = c
}

type bareScene struct{}

func collectSceneChanges(b *bus.Bus) *[]bus.SceneChanged {
	var got []bus.SceneChanged
	bus.On(b, func(p bus.SceneChanged) error {
		got = append(got, p)
		return nil
	})
	return &got
}

func TestSwitchToUnknownSceneTouchesNothing(t *testing.T) {
	b := bus.New()
	m := NewManager(b)
	var log []string
	m.Register("menu", &fakeScene{name: "menu", log: &log})
	require.True(t, m.SwitchTo("menu", nil))
	log = log[:0]

	assert.False(t, m.SwitchTo("nonexistent", nil))
	assert.Empty(t, log)
	assert.Equal(t, "menu", m.CurrentName())
}

func TestSwitchDeactivatesBeforeActivating(t *testing.T) {
	b := bus.New()
	m := NewManager(b)
	changes := collectSceneChanges(b)
	var log []string
	m.Register("a", &fakeScene{name: "a", log: &log})
	m.Register("b", &fakeScene{name: "b", log: &log})

	require.True(t, m.SwitchTo("a", nil))
	require.True(t, m.SwitchTo("b", 7))

	assert.Equal(t, []string{"a.activate", "a.deactivate", "b.activate"}, log)
	assert.Equal(t, []bus.SceneChanged{
		{From: "", To: "a"},
		{From: "a", To: "b", Data: 7},
	}, *changes)
}

func TestRegisterOverwriteReplacesScene(t *testing.T) {
	m := NewManager(bus.New())
	var log []string
	m.Register("menu", &fakeScene{name: "old", log: &log})
	m.Register("menu", &fakeScene{name: "new", log: &log})
	require.True(t, m.SwitchTo("menu", nil))
	assert.Equal(t, []string{"new.activate"}, log)
	assert.Equal(t, []string{"menu"}, m.Names())
}

func TestStateChangeDrivesSceneSwitch(t *testing.T) {
	b := bus.New()
	m := NewManager(b)
	var log []string
	menu := &fakeScene{name: "menu", log: &log}
	m.Register("menu", menu)

	b.Emit(bus.StateChanged{From: "boot", To: "menu", Data: "hello"})
	assert.Equal(t, "menu", m.CurrentName())
	assert.Equal(t, "hello", menu.lastData)

	b.Emit(bus.StateChanged{From: "menu", To: "custom"})
	b.Emit(bus.StateChanged{From: "menu", To: "settings"})
	assert.Equal(t, "menu", m.CurrentName())
	assert.Equal(t, []string{"menu.activate"}, log)
}

func TestActivationFailureLeavesNoCurrentScene(t *testing.T) {
	b := bus.New()
	m := NewManager(b)
	var reported []error
	bus.On(b, func(p bus.SystemError) error {
		reported = append(reported, p.Err)
		return nil
	})
	changes := collectSceneChanges(b)
	var log []string
	boom := errors.New("no surface")
	m.Register("ok", &fakeScene{name: "ok", log: &log})
	m.Register("broken", &fakeScene{name: "broken", log: &log, activateErr: boom})

	require.True(t, m.SwitchTo("ok", nil))
	assert.False(t, m.SwitchTo("broken", nil))

	assert.Nil(t, m.Current())
	assert.Equal(t, "", m.CurrentName())
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], boom)
	assert.Len(t, *changes, 1)
	assert.Equal(t, "broken", m.Failed())
	assert.Equal(t, "ok", m.Last())

	require.True(t, m.SwitchTo("ok", nil))
	assert.Equal(t, "", m.Failed())
	assert.Equal(t, "", m.Last())
}

func TestSetContainerReachesCurrentAndLaterScenes(t *testing.T) {
	m := NewManager(bus.New())
	var log []string
	early := &fakeScene{name: "early", log: &log}
	m.Register("early", early)
	m.Register("bare", bareScene{})

	canvas := surface.New(10, 5)
	m.SetContainer(canvas)
	late := &fakeScene{name: "late", log: &log}
	m.Register("late", late)

	assert.Same(t, canvas, early.container)
	assert.Same(t, canvas, late.container)
}

func TestInitializeAllAndReset(t *testing.T) {
	m := NewManager(bus.New())
	var log []string
	a := &fakeScene{name: "a", log: &log}
	m.Register("a", a)
	m.Register("bare", bareScene{})
	m.InitializeAll()
	assert.Equal(t, 1, a.initialized)

	require.True(t, m.SwitchTo("bare", nil))
	require.True(t, m.SwitchTo("a", nil))
	m.Reset()

	assert.Equal(t, []string{"a.activate", "a.deactivate"}, log)
	assert.Nil(t, m.Current())
	assert.Empty(t, m.Names())
}

func TestCloseStopsFollowingState(t *testing.T) {
	b := bus.New()
	m := NewManager(b)
	var log []string
	m.Register("menu", &fakeScene{name: "menu", log: &log})
	m.Close()
	b.Emit(bus.StateChanged{From: "boot", To: "menu"})
	assert.Empty(t, log)
}
