// Package metrics provides Prometheus metrics for the aqdash service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns every collector the service registers. All collectors live in
// a custom registry so the default Go runtime metrics stay out of /healthz.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Prediction pipeline
	predictionsTotal  prometheus.Counter
	predictionsFailed prometheus.Counter
	predictionLatency prometheus.Histogram

	// EDA surface
	chartRenders *prometheus.CounterVec
	chartErrors  prometheus.Counter

	// Dataset
	datasetRows prometheus.Gauge
	stationRows *prometheus.GaugeVec

	// Process health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry shared with /healthz

func init() { //nolint:gochecknoinits // metrics must exist before any handler runs
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "aqdash",
		subsystem:        "dashboard",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initCollectors()
	return m
}

func (m *Manager) initCollectors() {
	factory := promauthFactory{registry: m.registry}

	m.httpRequests = factory.counterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.histogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.predictionsTotal = factory.counter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_total",
		Help:      "Total PM2.5 predictions served.",
	})

	m.predictionsFailed = factory.counter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_failed_total",
		Help:      "Total prediction requests that failed in the scaler or model.",
	})

	m.predictionLatency = factory.histogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_latency_ms",
		Help:      "Scaler plus model inference latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.chartRenders = factory.counterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_renders_total",
		Help:      "EDA charts built, by chart kind.",
	}, []string{"kind"})

	m.chartErrors = factory.counter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_errors_total",
		Help:      "EDA chart builds that failed.",
	})

	m.datasetRows = factory.gauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Rows in the loaded dataset.",
	})

	m.stationRows = factory.gaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "station_rows",
		Help:      "Rows per monitoring station.",
	}, []string{"station"})

	m.systemMemoryUsage = factory.gauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Allocated heap bytes.",
	})

	m.systemGoroutineCount = factory.gauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutine_count",
		Help:      "Current goroutine count.",
	})
}

// promauthFactory registers collectors against the configured registry,
// mirroring promauto but bound to the manager's registry.
type promauthFactory struct {
	registry prometheus.Registerer
}

func (f promauthFactory) counter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	f.registry.MustRegister(c)
	return c
}

func (f promauthFactory) counterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	f.registry.MustRegister(c)
	return c
}

func (f promauthFactory) histogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	f.registry.MustRegister(h)
	return h
}

func (f promauthFactory) histogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	f.registry.MustRegister(h)
	return h
}

func (f promauthFactory) gauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	f.registry.MustRegister(g)
	return g
}

func (f promauthFactory) gaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(opts, labels)
	f.registry.MustRegister(g)
	return g
}

// GetRegistry returns the registry served by /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers against the global manager.

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

func RecordPrediction(latencyMs float64) {
	globalManager.predictionsTotal.Inc()
	globalManager.predictionLatency.Observe(latencyMs)
}

func RecordPredictionFailure() {
	globalManager.predictionsFailed.Inc()
}

func RecordChartRender(kind string) {
	globalManager.chartRenders.WithLabelValues(kind).Inc()
}

func RecordChartError() {
	globalManager.chartErrors.Inc()
}

func UpdateDatasetRows(rows int) {
	globalManager.datasetRows.Set(float64(rows))
}

func UpdateStationRows(station string, rows int) {
	globalManager.stationRows.WithLabelValues(station).Set(float64(rows))
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}
