// Package metrics counts kernel activity in a private Prometheus registry and
// optionally exposes it over HTTP.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/atomicstack/mizu/internal/kernel/bus"
	"github.com/atomicstack/mizu/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds the shell's collectors.
type Metrics struct {
	registry *prometheus.Registry

	Events        *prometheus.CounterVec
	Deliveries    *prometheus.CounterVec
	Failures      *prometheus.CounterVec
	SceneSwitches *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	WindowsOpen   prometheus.Gauge
	Uptime        prometheus.GaugeFunc

	started time.Time
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	m := &Metrics{registry: reg, started: time.Now()}

	m.Events = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mizu_bus_published_total",
			Help: "Events published on the kernel bus",
		},
		[]string{"event"},
	)
	m.Deliveries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mizu_bus_deliveries_total",
			Help: "Listener invocations scheduled by publishes",
		},
		[]string{"event"},
	)
	m.Failures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mizu_bus_listener_failures_total",
			Help: "Listeners that returned an error or panicked",
		},
		[]string{"event"},
	)
	m.SceneSwitches = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mizu_scene_switches_total",
			Help: "Scene activations by target scene",
		},
		[]string{"scene"},
	)
	m.Transitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mizu_state_transitions_total",
			Help: "Accepted state machine transitions",
		},
		[]string{"from", "to"},
	)
	m.WindowsOpen = factory.NewGauge(prometheus.GaugeOpts{
		Name: "mizu_windows_open",
		Help: "Mini-app windows currently open",
	})
	m.Uptime = factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "mizu_uptime_seconds",
		Help: "Seconds since the shell started",
	}, func() float64 {
		return time.Since(m.started).Seconds()
	})
	return m
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Published implements bus.Observer.
func (m *Metrics) Published(name bus.Name, listeners int) {
	m.Events.WithLabelValues(string(name)).Inc()
	m.Deliveries.WithLabelValues(string(name)).Add(float64(listeners))
}

// ListenerFailed implements bus.Observer.
func (m *Metrics) ListenerFailed(name bus.Name) {
	m.Failures.WithLabelValues(string(name)).Inc()
}

// Watch subscribes to the kernel events that feed the scene, state and
// window collectors. The returned group drops those subscriptions.
func (m *Metrics) Watch(b *bus.Bus) *bus.Group {
	g := bus.NewGroup(b)
	bus.On(g, func(p bus.SceneChanged) error {
		m.SceneSwitches.WithLabelValues(p.To).Inc()
		return nil
	})
	bus.On(g, func(p bus.StateChanged) error {
		m.Transitions.WithLabelValues(p.From, p.To).Inc()
		return nil
	})
	bus.On(g, func(bus.WindowOpened) error {
		m.WindowsOpen.Inc()
		return nil
	})
	bus.On(g, func(bus.WindowClosed) error {
		m.WindowsOpen.Dec()
		return nil
	})
	return g
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Info("metrics listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics serve: %w", err)
	}
	return nil
}
