package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router decision outcomes.
const (
	DecisionAllowed = "allowed"
	DecisionDenied  = "denied"
	DecisionInvalid = "invalid"
	DecisionFailed  = "failed"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	procedureDuration *prometheus.HistogramVec
	procedureErrors   *prometheus.CounterVec
	routerDecisions   *prometheus.CounterVec
	activeSessions    prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	procedureDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_procedure_duration_seconds",
		Help:    "Duration of remote store procedure calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"procedure"})

	procedureErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_procedure_errors_total",
		Help: "Remote store procedure failures by error code",
	}, []string{"procedure", "code"})

	routerDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "router_decisions_total",
		Help: "Command router decisions by operation, role and outcome",
	}, []string{"operation", "role", "outcome"})

	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_opened_minus_closed",
		Help: "Sessions opened minus sessions closed by this instance",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, procedureDuration, procedureErrors, routerDecisions, activeSessions, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		procedureDuration: procedureDuration,
		procedureErrors:   procedureErrors,
		routerDecisions:   routerDecisions,
		activeSessions:    activeSessions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveProcedure records remote call timing; a non-empty code counts as a failure.
func (m *MetricsService) ObserveProcedure(name string, duration time.Duration, code string) {
	if m == nil {
		return
	}
	m.procedureDuration.WithLabelValues(name).Observe(duration.Seconds())
	if code != "" {
		m.procedureErrors.WithLabelValues(name, code).Inc()
	}
}

// RecordDecision counts a command router outcome.
func (m *MetricsService) RecordDecision(operation, role, outcome string) {
	if m == nil {
		return
	}
	m.routerDecisions.WithLabelValues(operation, role, outcome).Inc()
}

// SessionOpened tracks a successful login.
func (m *MetricsService) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed tracks a logout.
func (m *MetricsService) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
