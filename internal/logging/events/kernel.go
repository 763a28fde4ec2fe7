package events

import "github.com/atomicstack/mizu/internal/logging"

type BusTracer struct{}

type StateTracer struct{}

type SceneTracer struct{}

type InputTracer struct{}

var (
	Bus   = BusTracer{}
	State = StateTracer{}
	Scene = SceneTracer{}
	Input = InputTracer{}
)

func (BusTracer) Publish(event string, listeners int) {
	logging.Trace("bus.publish", map[string]interface{}{"event": event, "listeners": listeners})
}

func (BusTracer) ListenerFault(event string, err error) {
	logging.Trace("bus.fault", map[string]interface{}{"event": event, "error": err.Error()})
}

func (BusTracer) Clear(event string) {
	logging.Trace("bus.clear", map[string]interface{}{"event": event})
}

func (StateTracer) Change(from, to string) {
	logging.Trace("state.change", map[string]interface{}{"from": from, "to": to})
}

func (StateTracer) Reject(from, to, reason string) {
	logging.Trace("state.reject", map[string]interface{}{"from": from, "to": to, "reason": reason})
}

func (StateTracer) Revert(from, to string) {
	logging.Trace("state.revert", map[string]interface{}{"from": from, "to": to})
}

func (StateTracer) Reset(from string) {
	logging.Trace("state.reset", map[string]interface{}{"from": from})
}

func (SceneTracer) Register(name string, replaced bool) {
	logging.Trace("scene.register", map[string]interface{}{"scene": name, "replaced": replaced})
}

func (SceneTracer) Recover(failed, restored string) {
	logging.Trace("scene.recover", map[string]interface{}{"failed": failed, "restored": restored})
}

func (SceneTracer) Switch(from, to string) {
	logging.Trace("scene.switch", map[string]interface{}{"from": from, "to": to})
}

func (SceneTracer) Missing(name string) {
	logging.Trace("scene.missing", map[string]interface{}{"scene": name})
}

func (SceneTracer) ActivateFailed(name string, err error) {
	logging.Trace("scene.activate-failed", map[string]interface{}{"scene": name, "error": err.Error()})
}

func (SceneTracer) Changed(from, to string) {
	logging.Trace("scene.changed", map[string]interface{}{"from": from, "to": to})
}

func (InputTracer) Key(key, code string) {
	logging.Trace("input.key", map[string]interface{}{"key": key, "code": code})
}

func (InputTracer) Pointer(kind string, x, y int) {
	logging.Trace("input.pointer", map[string]interface{}{"kind": kind, "x": x, "y": y})
}

func (InputTracer) Control(action string) {
	logging.Trace("input.control", map[string]interface{}{"action": action})
}

func (InputTracer) NavigationMode(enabled bool) {
	logging.Trace("input.mode", map[string]interface{}{"enabled": enabled})
}
