package state

import (
	"fmt"
	"sort"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"go.uber.org/zap"
)

// Name identifies a kernel state.
type Name string

const (
	Boot       Name = "boot"
	Menu       Name = "menu"
	App        Name = "app"
	Fullscreen Name = "fullscreen"
	Settings   Name = "settings"
	Error      Name = "error"
)

var builtinTransitions = map[Name][]Name{
	Boot:       {Menu, Error},
	Menu:       {App, Settings, Boot},
	App:        {Menu, Fullscreen, Boot},
	Fullscreen: {App, Menu, Boot},
	Settings:   {Menu, Boot},
	Error:      {Boot},
}

var descriptions = map[Name]string{
	Boot:       "System starting",
	Menu:       "Main menu",
	App:        "Desktop active",
	Fullscreen: "Application fullscreen",
	Settings:   "System settings",
	Error:      "System error",
}

// Info describes one state for status panels.
type Info struct {
	Name        Name
	Description string
	Allowed     []Name
}

// Option configures a Machine at construction.
type Option func(*options)

type options struct {
	extra map[Name][]Name
}

// WithStates adds states, or extra transitions for existing states. The set
// is fixed once New returns.
func WithStates(extra map[Name][]Name) Option {
	return func(o *options) {
		if o.extra == nil {
			o.extra = make(map[Name][]Name)
		}
		for from, targets := range extra {
			o.extra[from] = append(o.extra[from], targets...)
		}
	}
}

// Machine is the kernel's finite state controller.
type Machine struct {
	bus         *bus.Bus
	transitions map[Name]map[Name]struct{}
	current     Name
	previous    Name
	before      Name
	data        map[string]any
}

// New builds a machine in the boot state. Extra transitions must target
// states that exist once all options are applied.
func New(b *bus.Bus, opts ...Option) (*Machine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	table := make(map[Name]map[Name]struct{}, len(builtinTransitions)+len(o.extra))
	merge := func(src map[Name][]Name) {
		for from, targets := range src {
			set, ok := table[from]
			if !ok {
				set = make(map[Name]struct{}, len(targets))
				table[from] = set
			}
			for _, to := range targets {
				set[to] = struct{}{}
			}
		}
	}
	merge(builtinTransitions)
	merge(o.extra)
	for from, targets := range table {
		for to := range targets {
			if _, ok := table[to]; !ok {
				return nil, fmt.Errorf("state %q: transition to unknown state %q", from, to)
			}
		}
	}
	return &Machine{
		bus:         b,
		transitions: table,
		current:     Boot,
		data:        make(map[string]any),
	}, nil
}

// Current returns the active state.
func (m *Machine) Current() Name {
	return m.current
}

// Previous returns the state left by the last accepted transition.
func (m *Machine) Previous() Name {
	return m.previous
}

// Known reports whether name is part of the state set.
func (m *Machine) Known(name Name) bool {
	_, ok := m.transitions[name]
	return ok
}

// CanTransitionTo reports whether target is reachable from the current state.
func (m *Machine) CanTransitionTo(target Name) bool {
	if !m.Known(target) {
		return false
	}
	_, ok := m.transitions[m.current][target]
	return ok
}

// ChangeState moves to target when the table allows it and publishes
// stateChanged. Rejected transitions leave the machine untouched.
func (m *Machine) ChangeState(target Name, data any) bool {
	if !m.Known(target) {
		m.reject(target, "unknown state")
		return false
	}
	if !m.CanTransitionTo(target) {
		m.reject(target, "transition not allowed")
		return false
	}
	from := m.current
	m.before = m.previous
	m.previous = from
	m.current = target
	events.State.Change(string(from), string(target))
	if m.bus != nil {
		m.bus.Emit(bus.StateChanged{From: string(from), To: string(target), Data: data})
	}
	return true
}

func (m *Machine) reject(target Name, reason string) {
	logging.Warn("state transition rejected",
		zap.String("from", string(m.current)),
		zap.String("to", string(target)),
		zap.String("reason", reason),
	)
	events.State.Reject(string(m.current), string(target), reason)
}

// SetData attaches a value to the current state.
func (m *Machine) SetData(key string, value any) {
	m.data[key] = value
}

// Data returns the value stored under key.
func (m *Machine) Data(key string) (any, bool) {
	v, ok := m.data[key]
	return v, ok
}

// ClearData drops every stored value.
func (m *Machine) ClearData() {
	m.data = make(map[string]any)
}

// Reset returns to boot without publishing and clears stored values.
func (m *Machine) Reset() {
	events.State.Reset(string(m.current))
	m.previous = ""
	m.before = ""
	m.current = Boot
	m.ClearData()
}

// Revert undoes the last transition without publishing. It reports false
// when there is nothing to undo.
func (m *Machine) Revert() bool {
	if m.previous == "" {
		return false
	}
	events.State.Revert(string(m.current), string(m.previous))
	m.current = m.previous
	m.previous = m.before
	m.before = ""
	return true
}

// AvailableStates lists the targets reachable from the current state, sorted.
func (m *Machine) AvailableStates() []Name {
	return sortedTargets(m.transitions[m.current])
}

// States lists every known state, sorted.
func (m *Machine) States() []Name {
	out := make([]Name, 0, len(m.transitions))
	for name := range m.transitions {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Info describes the current state.
func (m *Machine) Info() Info {
	desc, ok := descriptions[m.current]
	if !ok {
		desc = string(m.current)
	}
	return Info{Name: m.current, Description: desc, Allowed: m.AvailableStates()}
}

func sortedTargets(set map[Name]struct{}) []Name {
	out := make([]Name, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
