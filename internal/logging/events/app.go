package events

import "github.com/atomicstack/mizu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Ready(scenes []string) {
	logging.Trace("app.ready", map[string]interface{}{"scenes": scenes})
}

func (AppTracer) Shutdown(scene string) {
	logging.Trace("app.shutdown", map[string]interface{}{"scene": scene})
}

func (AppTracer) Exit(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
