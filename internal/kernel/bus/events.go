package bus

// Name identifies an event on the bus. Names are the contract between the
// kernel, scenes and mini-apps.
type Name string

const (
	NavigateEvent              Name = "navigate"
	ActionEvent                Name = "action"
	KeyDownEvent               Name = "keyDown"
	KeyUpEvent                 Name = "keyUp"
	CursorMoveEvent            Name = "cursorMove"
	PointerDownEvent           Name = "pointerDown"
	PointerUpEvent             Name = "pointerUp"
	ButtonActionEvent          Name = "buttonAction"
	StateChangedEvent          Name = "stateChanged"
	SceneChangedEvent          Name = "sceneChanged"
	ChangeSceneEvent           Name = "changeScene"
	ShutdownEvent              Name = "shutdown"
	SystemShutdownEvent        Name = "systemShutdown"
	SystemReadyEvent           Name = "systemReady"
	SystemErrorEvent           Name = "systemError"
	NavigationModeChangedEvent Name = "navigationModeChanged"
	ResizeEvent                Name = "resize"
	SettingsChangedEvent       Name = "settingsChanged"
	WindowOpenedEvent          Name = "windowOpened"
	WindowClosedEvent          Name = "windowClosed"
)

// Payload is implemented by every typed event body. Subscribers switch on the
// concrete type.
type Payload interface {
	Name() Name
}

// Event is what a Handler receives.
type Event struct {
	Name    Name
	Payload Payload
}

type Direction string

const (
	Up       Direction = "up"
	Down     Direction = "down"
	Left     Direction = "left"
	Right    Direction = "right"
	Next     Direction = "next"
	Previous Direction = "previous"
)

type ActionType string

const (
	Positive   ActionType = "positive"
	Negative   ActionType = "negative"
	Fullscreen ActionType = "fullscreen"
)

type Navigate struct {
	Direction Direction
}

type Action struct {
	Type ActionType
}

// KeyDown carries the normalized key name, the host key code and, when the
// host provides one, its native key event.
type KeyDown struct {
	Key    string
	Code   string
	Native any
}

type KeyUp struct {
	Key  string
	Code string
}

type CursorMove struct {
	X, Y int
}

type PointerDown struct {
	X, Y int
}

type PointerUp struct {
	X, Y int
}

type ButtonAction struct {
	Action string
}

type StateChanged struct {
	From string
	To   string
	Data any
}

type SceneChanged struct {
	From string
	To   string
	Data any
}

type ChangeScene struct {
	Scene string
	Data  any
}

type Shutdown struct{}

type SystemShutdown struct{}

type SystemReady struct{}

type SystemError struct {
	Err error
}

type NavigationModeChanged struct {
	Enabled bool
}

type Resize struct {
	Width, Height int
}

type SettingsChanged struct {
	Theme    string
	Language string
	Mode     string
}

type WindowOpened struct {
	ID  string
	App string
}

type WindowClosed struct {
	ID  string
	App string
}

func (Navigate) Name() Name              { return NavigateEvent }
func (Action) Name() Name                { return ActionEvent }
func (KeyDown) Name() Name               { return KeyDownEvent }
func (KeyUp) Name() Name                 { return KeyUpEvent }
func (CursorMove) Name() Name            { return CursorMoveEvent }
func (PointerDown) Name() Name           { return PointerDownEvent }
func (PointerUp) Name() Name             { return PointerUpEvent }
func (ButtonAction) Name() Name          { return ButtonActionEvent }
func (StateChanged) Name() Name          { return StateChangedEvent }
func (SceneChanged) Name() Name          { return SceneChangedEvent }
func (ChangeScene) Name() Name           { return ChangeSceneEvent }
func (Shutdown) Name() Name              { return ShutdownEvent }
func (SystemShutdown) Name() Name        { return SystemShutdownEvent }
func (SystemReady) Name() Name           { return SystemReadyEvent }
func (SystemError) Name() Name           { return SystemErrorEvent }
func (NavigationModeChanged) Name() Name { return NavigationModeChangedEvent }
func (Resize) Name() Name                { return ResizeEvent }
func (SettingsChanged) Name() Name       { return SettingsChangedEvent }
func (WindowOpened) Name() Name          { return WindowOpenedEvent }
func (WindowClosed) Name() Name          { return WindowClosedEvent }
