package bus

// Subscriber is satisfied by both Bus and Group.
type Subscriber interface {
	Subscribe(name Name, fn Handler) Subscription
}

type groupEntry struct {
	name Name
	sub  Subscription
}

// Group records subscriptions so an owner can drop them all with one call.
type Group struct {
	bus     *Bus
	entries []groupEntry
}

// NewGroup creates a group bound to b.
func NewGroup(b *Bus) *Group {
	return &Group{bus: b}
}

// Bus returns the underlying bus.
func (g *Group) Bus() *Bus {
	return g.bus
}

func (g *Group) Subscribe(name Name, fn Handler) Subscription {
	sub := g.bus.Subscribe(name, fn)
	g.entries = append(g.entries, groupEntry{name: name, sub: sub})
	return sub
}

func (g *Group) SubscribeOnce(name Name, fn Handler) Subscription {
	sub := g.bus.SubscribeOnce(name, fn)
	g.entries = append(g.entries, groupEntry{name: name, sub: sub})
	return sub
}

// Len reports how many subscriptions the group holds.
func (g *Group) Len() int {
	return len(g.entries)
}

// Close unsubscribes everything the group registered. Safe to call twice.
func (g *Group) Close() {
	for _, e := range g.entries {
		g.bus.Unsubscribe(e.name, e.sub)
	}
	g.entries = nil
}

// On subscribes fn to the event named by T. Payloads of another type are
// skipped; a nil payload is delivered as the zero T.
func On[T Payload](s Subscriber, fn func(T) error) Subscription {
	var zero T
	return s.Subscribe(zero.Name(), func(ev Event) error {
		if ev.Payload == nil {
			return fn(zero)
		}
		p, ok := ev.Payload.(T)
		if !ok {
			return nil
		}
		return fn(p)
	})
}
