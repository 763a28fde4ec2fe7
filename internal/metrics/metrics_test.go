package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserverCountsPublishesAndFailures(t *testing.T) {
	m := New()
	b := bus.New(bus.WithObserver(m))
	b.Subscribe(bus.NavigateEvent, func(bus.Event) error { return nil })
	b.Subscribe(bus.NavigateEvent, func(bus.Event) error { return errors.New("boom") })

	b.Emit(bus.Navigate{Direction: bus.Down})
	b.Emit(bus.Navigate{Direction: bus.Up})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("navigate")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Deliveries.WithLabelValues("navigate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Failures.WithLabelValues("navigate")))
}

func TestWatchTracksScenesStatesAndWindows(t *testing.T) {
	m := New()
	b := bus.New()
	g := m.Watch(b)

	b.Emit(bus.StateChanged{From: "boot", To: "menu"})
	b.Emit(bus.SceneChanged{From: "boot", To: "menu"})
	b.Emit(bus.WindowOpened{ID: "1", App: "notes"})
	b.Emit(bus.WindowOpened{ID: "2", App: "pixel"})
	b.Emit(bus.WindowClosed{ID: "1", App: "notes"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("boot", "menu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SceneSwitches.WithLabelValues("menu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowsOpen))

	g.Close()
	b.Emit(bus.SceneChanged{From: "menu", To: "app"})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SceneSwitches.WithLabelValues("app")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.Published(bus.SystemReadyEvent, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `mizu_bus_published_total{event="systemReady"} 1`))
	assert.True(t, strings.Contains(string(body), "mizu_uptime_seconds"))
}
