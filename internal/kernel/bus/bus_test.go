package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	published map[Name]int
	failed    map[Name]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{published: map[Name]int{}, failed: map[Name]int{}}
}

func (o *recordingObserver) Published(name Name, _ int) { o.published[name]++ }
func (o *recordingObserver) ListenerFailed(name Name)   { o.failed[name]++ }

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		b.Subscribe(NavigateEvent, func(Event) error {
			order = append(order, i)
			return nil
		})
	}
	b.Emit(Navigate{Direction: Down})
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFaultyListenersDoNotStopDispatch(t *testing.T) {
	obs := newRecordingObserver()
	b := New(WithObserver(obs))
	var order []string
	b.Subscribe(ActionEvent, func(Event) error {
		order = append(order, "first")
		return errors.New("broken")
	})
	b.Subscribe(ActionEvent, func(Event) error {
		order = append(order, "second")
		panic("mini-app exploded")
	})
	b.Subscribe(ActionEvent, func(ev Event) error {
		order = append(order, "third")
		act, ok := ev.Payload.(Action)
		require.True(t, ok)
		assert.Equal(t, Positive, act.Type)
		return nil
	})

	b.Emit(Action{Type: Positive})

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, 1, obs.published[ActionEvent])
	assert.Equal(t, 2, obs.failed[ActionEvent])
}

func TestListenerErrorCarriesPanicValue(t *testing.T) {
	err := invoke(Event{Name: ShutdownEvent}, func(Event) error { panic("boom") })
	var lerr *ListenerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "boom", lerr.Value)
	assert.NotEmpty(t, lerr.Stack)

	cause := errors.New("cause")
	err = invoke(Event{Name: ShutdownEvent}, func(Event) error { return cause })
	assert.ErrorIs(t, err, cause)
}

func TestOnceListenersFireOnceAfterPersistent(t *testing.T) {
	b := New()
	var order []string
	b.SubscribeOnce(SystemReadyEvent, func(Event) error {
		order = append(order, "once")
		return nil
	})
	b.Subscribe(SystemReadyEvent, func(Event) error {
		order = append(order, "persistent")
		return nil
	})
	assert.Equal(t, 2, b.Count(SystemReadyEvent))

	b.Emit(SystemReady{})
	b.Emit(SystemReady{})

	assert.Equal(t, []string{"persistent", "once", "persistent"}, order)
	assert.Equal(t, 1, b.Count(SystemReadyEvent))
}

func TestOnceListenerAddedDuringDispatchWaitsForNextPublish(t *testing.T) {
	b := New()
	late := 0
	b.SubscribeOnce(ShutdownEvent, func(Event) error {
		b.SubscribeOnce(ShutdownEvent, func(Event) error {
			late++
			return nil
		})
		return nil
	})

	b.Publish(ShutdownEvent, nil)
	assert.Equal(t, 0, late)
	assert.Equal(t, 1, b.Count(ShutdownEvent))

	b.Publish(ShutdownEvent, nil)
	assert.Equal(t, 1, late)
	assert.Equal(t, 0, b.Count(ShutdownEvent))
}

func TestReentrantPublishDoesNotRepeatOnceListener(t *testing.T) {
	b := New()
	calls := 0
	b.SubscribeOnce(ResizeEvent, func(Event) error {
		calls++
		b.Emit(Resize{Width: 1, Height: 1})
		return nil
	})
	b.Emit(Resize{Width: 2, Height: 2})
	assert.Equal(t, 1, calls)
}

func TestUnsubscribeRemovesOnlyTheGivenListener(t *testing.T) {
	b := New()
	var calls []string
	handler := func(tag string) Handler {
		return func(Event) error {
			calls = append(calls, tag)
			return nil
		}
	}
	first := b.Subscribe(KeyDownEvent, handler("a"))
	b.Subscribe(KeyDownEvent, handler("a"))
	b.SubscribeOnce(KeyDownEvent, handler("once"))

	b.Unsubscribe(KeyDownEvent, first)
	assert.Equal(t, 2, b.Count(KeyDownEvent))

	b.Emit(KeyDown{Key: "x"})
	assert.Equal(t, []string{"a", "once"}, calls)
}

func TestUnsubscribeWithoutListenerClearsBothKinds(t *testing.T) {
	b := New()
	b.Subscribe(KeyUpEvent, func(Event) error { return nil })
	b.SubscribeOnce(KeyUpEvent, func(Event) error { return nil })
	b.Subscribe(KeyDownEvent, func(Event) error { return nil })

	b.Unsubscribe(KeyUpEvent)

	assert.Equal(t, 0, b.Count(KeyUpEvent))
	assert.Equal(t, 1, b.Count(KeyDownEvent))
}

func TestListenerRemovedMidDispatchIsSkipped(t *testing.T) {
	b := New()
	var second Subscription
	secondCalled := false
	b.Subscribe(CursorMoveEvent, func(Event) error {
		b.Unsubscribe(CursorMoveEvent, second)
		return nil
	})
	second = b.Subscribe(CursorMoveEvent, func(Event) error {
		secondCalled = true
		return nil
	})
	b.Emit(CursorMove{X: 1, Y: 2})
	assert.False(t, secondCalled)
}

func TestClearDropsEverything(t *testing.T) {
	b := New()
	b.Subscribe(NavigateEvent, func(Event) error { return nil })
	b.SubscribeOnce(ActionEvent, func(Event) error { return nil })
	b.Clear()
	assert.Zero(t, b.Count(NavigateEvent))
	assert.Zero(t, b.Count(ActionEvent))
}

func TestGroupCloseAndTypedOn(t *testing.T) {
	b := New()
	g := NewGroup(b)
	var got []Direction
	On(g, func(n Navigate) error {
		got = append(got, n.Direction)
		return nil
	})
	shutdowns := 0
	On(g, func(Shutdown) error {
		shutdowns++
		return nil
	})
	require.Equal(t, 2, g.Len())

	b.Emit(Navigate{Direction: Left})
	b.Publish(NavigateEvent, Action{Type: Positive})
	b.Publish(ShutdownEvent, nil)
	assert.Equal(t, []Direction{Left}, got)
	assert.Equal(t, 1, shutdowns)

	g.Close()
	g.Close()
	b.Emit(Navigate{Direction: Right})
	assert.Equal(t, []Direction{Left}, got)
	assert.Zero(t, b.Count(NavigateEvent))
}
