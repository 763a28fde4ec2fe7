// Package scene owns the registry of top-level scenes and guarantees that at
// most one of them is active.
//
// A scene is any value. The manager discovers which lifecycle hooks it
// supports through the small interfaces below, so a scene implements only
// what it needs.
package scene

import "github.com/atomicstack/mizu/internal/surface"

// Scene is a registered top-level UI mode.
type Scene interface{}

// Activator is called when the scene becomes current. Returning an error
// aborts the activation.
type Activator interface {
	Activate(data any) error
}

// Deactivator is called when the scene stops being current. It is the one
// place a scene cancels its timers and listeners.
type Deactivator interface {
	Deactivate()
}

// Initializer runs once after registration, before the first activation.
type Initializer interface {
	Initialize()
}

// ContainerSetter receives the rendering surface.
type ContainerSetter interface {
	SetContainer(c *surface.Canvas)
}

// Renderer draws the scene for one frame.
type Renderer interface {
	Render(c *surface.Canvas)
}

// Helper describes the keys a scene understands for the footer.
type Helper interface {
	Hints() []string
}
