// Package kernel assembles the bus, state machine, scene manager and input
// manager into one process-wide unit and installs the system listeners that
// glue them together.
package kernel

import (
	"errors"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/kernel/input"
	"github.com/atomicstack/mizu/internal/kernel/scene"
	"github.com/atomicstack/mizu/internal/kernel/state"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/atomicstack/mizu/internal/logging/events"
	"github.com/atomicstack/mizu/internal/surface"
	"go.uber.org/zap"
)

// System control actions carried by buttonAction.
const (
	ControlMenu     = "menu"
	ControlSettings = "settings"
	ControlShutdown = "shutdown"
	ControlRestart  = "restart"
)

// BootScene is the scene Start activates.
const BootScene = "boot"

// Options configures New.
type Options struct {
	Bus      *bus.Bus
	Observer bus.Observer
	States   map[string][]string
	FreeMode bool
	KeyMap   *input.KeyMap
}

// Status is a snapshot for status panels and traces.
type Status struct {
	Initialized      bool
	CurrentScene     string
	SystemState      string
	RegisteredScenes []string
}

// Kernel owns the four core managers.
type Kernel struct {
	Bus    *bus.Bus
	State  *state.Machine
	Scenes *scene.Manager
	Input  *input.Manager

	system      *bus.Group
	initialized bool
	shutdown    bool
	lastErr     error
	restoring   bool
	restored    bool
}

// New builds the managers and installs the system listeners.
func New(opts Options) (*Kernel, error) {
	b := opts.Bus
	if b == nil {
		var busOpts []bus.Option
		if opts.Observer != nil {
			busOpts = append(busOpts, bus.WithObserver(opts.Observer))
		}
		b = bus.New(busOpts...)
	}

	var stateOpts []state.Option
	if len(opts.States) > 0 {
		extra := make(map[state.Name][]state.Name, len(opts.States))
		for from, targets := range opts.States {
			for _, to := range targets {
				extra[state.Name(from)] = append(extra[state.Name(from)], state.Name(to))
			}
		}
		stateOpts = append(stateOpts, state.WithStates(extra))
	}
	machine, err := state.New(b, stateOpts...)
	if err != nil {
		return nil, err
	}

	inputOpts := []input.Option{input.WithNavigationMode(!opts.FreeMode)}
	if opts.KeyMap != nil {
		inputOpts = append(inputOpts, input.WithKeyMap(*opts.KeyMap))
	}

	k := &Kernel{
		Bus:    b,
		State:  machine,
		Scenes: scene.NewManager(b),
		Input:  input.New(b, inputOpts...),
	}
	k.listen()
	return k, nil
}

func (k *Kernel) listen() {
	g := bus.NewGroup(k.Bus)
	bus.On(g, func(p bus.ChangeScene) error {
		k.ChangeScene(p.Scene, p.Data)
		return nil
	})
	bus.On(g, func(p bus.ButtonAction) error {
		k.control(p.Action)
		return nil
	})
	bus.On(g, func(bus.Shutdown) error {
		k.Shutdown()
		return nil
	})
	bus.On(g, func(p bus.SceneChanged) error {
		events.Scene.Changed(p.From, p.To)
		return nil
	})
	bus.On(g, func(p bus.SystemError) error {
		k.fail(p.Err)
		return nil
	})
	k.system = g
}

// Register adds a scene.
func (k *Kernel) Register(name string, s scene.Scene) {
	k.Scenes.Register(name, s)
}

// Initialize hands the surface to every scene and runs their Initialize
// hooks. Call it after registering scenes.
func (k *Kernel) Initialize(c *surface.Canvas) {
	k.Scenes.SetContainer(c)
	k.Scenes.InitializeAll()
	k.initialized = true
}

// Start announces readiness and activates the boot scene.
func (k *Kernel) Start() bool {
	events.App.Ready(k.Scenes.Names())
	k.Bus.Emit(bus.SystemReady{})
	return k.Scenes.SwitchTo(BootScene, nil)
}

// ChangeScene moves to name. Names that are kernel states go through the
// state machine so illegal transitions are refused; other names switch the
// scene directly. It reports false when the target scene failed to
// activate and the kernel fell back to another scene.
func (k *Kernel) ChangeScene(name string, data any) bool {
	if name == "" {
		return false
	}
	k.restored = false
	target := state.Name(name)
	if k.State.Known(target) {
		return k.State.ChangeState(target, data) && !k.restored
	}
	return k.Scenes.SwitchTo(name, data)
}

func (k *Kernel) control(action string) {
	switch action {
	case ControlShutdown:
		k.Bus.Emit(bus.Shutdown{})
	case ControlRestart:
		k.State.ChangeState(state.Boot, nil)
	case ControlMenu, ControlSettings:
		k.ChangeScene(action, nil)
	default:
		if _, ok := k.Scenes.Get(action); ok {
			k.ChangeScene(action, nil)
			return
		}
		logging.Debug("unhandled control", zap.String("action", action))
	}
}

func (k *Kernel) fail(err error) {
	if err == nil {
		err = errors.New("unknown system error")
	}
	k.lastErr = err
	logging.Error(err, zap.String("state", string(k.State.Current())))
	if k.Scenes.Current() == nil && k.Scenes.Failed() != "" && !k.restoring {
		k.restore(err)
		return
	}
	if k.State.CanTransitionTo(state.Error) {
		k.State.ChangeState(state.Error, err)
	}
}

// restore brings back a current scene after a failed activation. A state
// transition that led to the failed scene is undone first. The error scene
// is used when the restored state may move there; otherwise the scene that
// was just deactivated comes back.
func (k *Kernel) restore(err error) {
	k.restoring = true
	defer func() { k.restoring = false }()
	k.restored = true
	failed, last := k.Scenes.Failed(), k.Scenes.Last()
	if name, ok := scene.SceneFor(string(k.State.Current())); ok && name == failed && last != "" {
		k.State.Revert()
	}
	events.Scene.Recover(failed, last)
	if k.State.CanTransitionTo(state.Error) && k.State.ChangeState(state.Error, err) && k.Scenes.Current() != nil {
		return
	}
	if last != "" && last != failed {
		k.Scenes.SwitchTo(last, nil)
	}
}

// LastError returns the most recent systemError payload.
func (k *Kernel) LastError() error {
	return k.lastErr
}

// Shutdown tears the shell down: scenes are deactivated and dropped, input
// state is reset, systemShutdown is published and the bus is cleared.
// Later calls do nothing.
func (k *Kernel) Shutdown() {
	if k.shutdown {
		return
	}
	k.shutdown = true
	events.App.Shutdown(k.Scenes.CurrentName())
	k.Scenes.Reset()
	k.Input.Reset()
	k.Bus.Emit(bus.SystemShutdown{})
	k.system.Close()
	k.Scenes.Close()
	k.Bus.Clear()
}

// Closed reports whether Shutdown has run.
func (k *Kernel) Closed() bool {
	return k.shutdown
}

// Status reports the kernel's current shape.
func (k *Kernel) Status() Status {
	return Status{
		Initialized:      k.initialized,
		CurrentScene:     k.Scenes.CurrentName(),
		SystemState:      string(k.State.Current()),
		RegisteredScenes: k.Scenes.Names(),
	}
}
