package bus

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"go.uber.org/zap"
)

// Handler reacts to a published event. A returned error is logged and does
// not stop delivery to later listeners.
type Handler func(Event) error

// Subscription identifies one registered listener. Go funcs are not
// comparable, so the token stands in for callback identity.
type Subscription uint64

// Observer receives dispatch statistics. The metrics package implements it.
type Observer interface {
	Published(name Name, listeners int)
	ListenerFailed(name Name)
}

// Option configures a Bus.
type Option func(*Bus)

// WithObserver attaches a dispatch observer.
func WithObserver(o Observer) Option {
	return func(b *Bus) {
		b.observer = o
	}
}

type entry struct {
	id      Subscription
	fn      Handler
	live    bool
	claimed bool
}

// Bus is the kernel's publish/subscribe hub. It is constructed once per
// process and passed to every component that needs it.
type Bus struct {
	mu        sync.Mutex
	next      Subscription
	listeners map[Name][]*entry
	once      map[Name][]*entry
	observer  Observer
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		listeners: make(map[Name][]*entry),
		once:      make(map[Name][]*entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ListenerError wraps a failure raised by one listener.
type ListenerError struct {
	Event Name
	Err   error
	Value any
	Stack []byte
}

func (e *ListenerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listener for %s: %v", e.Event, e.Err)
	}
	return fmt.Sprintf("listener for %s panicked: %v", e.Event, e.Value)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// Subscribe registers fn for every future publish of name.
func (b *Bus) Subscribe(name Name, fn Handler) Subscription {
	return b.add(b.listeners, name, fn)
}

// SubscribeOnce registers fn for the next publish of name only.
func (b *Bus) SubscribeOnce(name Name, fn Handler) Subscription {
	return b.add(b.once, name, fn)
}

func (b *Bus) add(target map[Name][]*entry, name Name, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	target[name] = append(target[name], &entry{id: b.next, fn: fn, live: true})
	return b.next
}

// Emit publishes p under its own event name.
func (b *Bus) Emit(p Payload) {
	if p == nil {
		return
	}
	b.Publish(p.Name(), p)
}

// Publish delivers payload to the persistent listeners of name in
// registration order, then to the once-listeners present when the publish
// began. Those once-listeners are evicted together after the pass; listeners
// registered while dispatching wait for the next publish.
func (b *Bus) Publish(name Name, payload Payload) {
	b.mu.Lock()
	persistent := append([]*entry(nil), b.listeners[name]...)
	var once []*entry
	for _, e := range b.once[name] {
		if !e.claimed {
			e.claimed = true
			once = append(once, e)
		}
	}
	observer := b.observer
	b.mu.Unlock()

	total := len(persistent) + len(once)
	events.Bus.Publish(string(name), total)
	if observer != nil {
		observer.Published(name, total)
	}

	ev := Event{Name: name, Payload: payload}
	for _, e := range persistent {
		b.deliver(ev, e)
	}
	for _, e := range once {
		b.deliver(ev, e)
	}
	if len(once) > 0 {
		b.evict(name, once)
	}
}

func (b *Bus) deliver(ev Event, e *entry) {
	b.mu.Lock()
	live := e.live
	b.mu.Unlock()
	if !live {
		return
	}
	if err := invoke(ev, e.fn); err != nil {
		logging.Error(err, zap.String("event", string(ev.Name)))
		events.Bus.ListenerFault(string(ev.Name), err)
		b.mu.Lock()
		observer := b.observer
		b.mu.Unlock()
		if observer != nil {
			observer.ListenerFailed(ev.Name)
		}
	}
}

func invoke(ev Event, fn Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerError{Event: ev.Name, Value: r, Stack: debug.Stack()}
		}
	}()
	if ferr := fn(ev); ferr != nil {
		return &ListenerError{Event: ev.Name, Err: ferr}
	}
	return nil
}

func (b *Bus) evict(name Name, fired []*entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	done := make(map[*entry]struct{}, len(fired))
	for _, e := range fired {
		e.live = false
		done[e] = struct{}{}
	}
	kept := b.once[name][:0]
	for _, e := range b.once[name] {
		if _, ok := done[e]; !ok {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(b.once, name)
		return
	}
	b.once[name] = kept
}

// Unsubscribe without subscriptions drops every listener of both kinds for
// name. Otherwise only the listed listeners are removed.
func (b *Bus) Unsubscribe(name Name, subs ...Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(subs) == 0 {
		for _, e := range b.listeners[name] {
			e.live = false
		}
		for _, e := range b.once[name] {
			e.live = false
		}
		delete(b.listeners, name)
		delete(b.once, name)
		events.Bus.Clear(string(name))
		return
	}
	for _, id := range subs {
		if removeFirst(b.listeners, name, id) {
			continue
		}
		removeFirst(b.once, name, id)
	}
}

func removeFirst(target map[Name][]*entry, name Name, id Subscription) bool {
	list := target[name]
	for i, e := range list {
		if e.id != id {
			continue
		}
		e.live = false
		updated := append(list[:i:i], list[i+1:]...)
		if len(updated) == 0 {
			delete(target, name)
		} else {
			target[name] = updated
		}
		return true
	}
	return false
}

// Count reports registered listeners of both kinds for name.
func (b *Bus) Count(name Name) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[name]) + len(b.once[name])
}

// Clear drops every listener on the bus.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.listeners {
		for _, e := range list {
			e.live = false
		}
	}
	for _, list := range b.once {
		for _, e := range list {
			e.live = false
		}
	}
	b.listeners = make(map[Name][]*entry)
	b.once = make(map[Name][]*entry)
	events.Bus.Clear("*")
}
