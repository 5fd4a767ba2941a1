package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Catalog metrics
	AppsDiscovered prometheus.Gauge
	ScansTotal     *prometheus.CounterVec

	// Process metrics
	ProcessesRunning prometheus.Gauge
	LaunchesTotal    *prometheus.CounterVec
	ClosesTotal      *prometheus.CounterVec
	CloseDuration    prometheus.Histogram

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a metrics collector backed by a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miraos_http_requests_total",
				Help: "Total number of admin API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "miraos_http_request_duration_seconds",
				Help:    "Admin API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		AppsDiscovered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "miraos_apps_discovered",
				Help: "Number of launchable apps in the current catalog",
			},
		),
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miraos_scans_total",
				Help: "Total number of catalog scans",
			},
			[]string{"result"},
		),

		ProcessesRunning: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "miraos_processes_running",
				Help: "Number of processes tracked in the registry",
			},
		),
		LaunchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miraos_launches_total",
				Help: "Total number of launch attempts",
			},
			[]string{"strategy", "result"},
		),
		ClosesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miraos_closes_total",
				Help: "Total number of close attempts on tracked processes",
			},
			[]string{"result"},
		),
		CloseDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "miraos_close_duration_seconds",
				Help:    "Time spent terminating a tracked process",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "miraos_uptime_seconds",
			Help: "Launcher uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry (for tests and custom exporters).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records an admin API request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScan records a catalog scan and the resulting catalog size
func (m *Metrics) RecordScan(result string, apps int) {
	if m == nil {
		return
	}
	m.ScansTotal.WithLabelValues(result).Inc()
	m.AppsDiscovered.Set(float64(apps))
}

// RecordLaunch records a launch attempt
func (m *Metrics) RecordLaunch(strategy, result string) {
	if m == nil {
		return
	}
	m.LaunchesTotal.WithLabelValues(strategy, result).Inc()
}

// RecordClose records a close attempt and its duration
func (m *Metrics) RecordClose(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ClosesTotal.WithLabelValues(result).Inc()
	m.CloseDuration.Observe(duration.Seconds())
}

// SetProcessesRunning updates the tracked process gauge
func (m *Metrics) SetProcessesRunning(count int) {
	if m == nil {
		return
	}
	m.ProcessesRunning.Set(float64(count))
}
