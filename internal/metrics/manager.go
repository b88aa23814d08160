package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "splitday"

const (
	StartKindSplit   = "split"
	StartKindCustom  = "custom"
	StartKindRestDay = "rest_day"
	StartKindManual  = "manual"

	CompletionAuto   = "auto"
	CompletionManual = "manual"
)

type Manager struct {
	CounterWorkoutsStarted   *prometheus.CounterVec
	CounterSetsLogged        prometheus.Counter
	CounterWorkoutsCompleted *prometheus.CounterVec
	CounterRequests          *prometheus.CounterVec
	CounterLoginThrottled    prometheus.Counter

	HistogramRequestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewTestManager() (*Manager, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return NewManager(registry), registry
}

func NewManager(reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterWorkoutsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workouts_started_total",
			Help:      "Workout days created, by how they were started",
		}, []string{"kind"}),
		CounterSetsLogged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "sets_logged_total",
			Help:      "Sets written with actual weight and reps",
		}),
		CounterWorkoutsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workouts_completed_total",
			Help:      "Workout days moved to completed, by trigger",
		}, []string{"trigger"}),
		CounterRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "status"}),
		CounterLoginThrottled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "login_throttled_total",
			Help:      "Login attempts rejected by the attempt limiter",
		}),
		HistogramRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of response time for requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"route", "method"}),
	}
}

// The helpers below accept a nil manager so callers can run without metrics.

func (m *Manager) WorkoutStarted(kind string) {
	if m == nil {
		return
	}
	m.CounterWorkoutsStarted.WithLabelValues(kind).Inc()
}

func (m *Manager) SetLogged() {
	if m == nil {
		return
	}
	m.CounterSetsLogged.Inc()
}

func (m *Manager) WorkoutCompleted(trigger string) {
	if m == nil {
		return
	}
	m.CounterWorkoutsCompleted.WithLabelValues(trigger).Inc()
}

func (m *Manager) LoginThrottled() {
	if m == nil {
		return
	}
	m.CounterLoginThrottled.Inc()
}
