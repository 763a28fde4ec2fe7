package events

import "github.com/atomicstack/mizu/internal/logging"

type FocusTracer struct{}

type TimerTracer struct{}

type WindowTracer struct{}

type StoreTracer struct{}

type ViewTracer struct{}

var (
	Focus  = FocusTracer{}
	Timer  = TimerTracer{}
	Window = WindowTracer{}
	Store  = StoreTracer{}
	View   = ViewTracer{}
)

func (FocusTracer) Move(host string, index int) {
	logging.Trace("focus.move", map[string]interface{}{"host": host, "index": index})
}

func (FocusTracer) Mode(host, mode string) {
	logging.Trace("focus.mode", map[string]interface{}{"host": host, "mode": mode})
}

func (FocusTracer) Trigger(host, label string) {
	logging.Trace("focus.trigger", map[string]interface{}{"host": host, "label": label})
}

func (TimerTracer) Arm(name string, from int) {
	logging.Trace("timer.arm", map[string]interface{}{"timer": name, "from": from})
}

func (TimerTracer) Tick(name string, remaining int) {
	logging.Trace("timer.tick", map[string]interface{}{"timer": name, "remaining": remaining})
}

func (TimerTracer) Cancel(name string, remaining int) {
	logging.Trace("timer.cancel", map[string]interface{}{"timer": name, "remaining": remaining})
}

func (TimerTracer) Fire(name string) {
	logging.Trace("timer.fire", map[string]interface{}{"timer": name})
}

func (WindowTracer) Open(id, app string) {
	logging.Trace("window.open", map[string]interface{}{"id": id, "app": app})
}

func (WindowTracer) Close(id, app string) {
	logging.Trace("window.close", map[string]interface{}{"id": id, "app": app})
}

func (WindowTracer) Focus(id string) {
	logging.Trace("window.focus", map[string]interface{}{"id": id})
}

func (StoreTracer) Fallback(key, reason string) {
	logging.Trace("store.fallback", map[string]interface{}{"key": key, "reason": reason})
}

func (ViewTracer) Resize(width, height int) {
	logging.Trace("view.resize", map[string]interface{}{"width": width, "height": height})
}

func (ViewTracer) Quit(scene string) {
	logging.Trace("view.quit", map[string]interface{}{"scene": scene})
}
