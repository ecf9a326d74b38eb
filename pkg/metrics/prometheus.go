// Package metrics provides Prometheus metrics for the talentgrid service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring
	recordsIngested  prometheus.Counter
	recordsDuplicate prometheus.Counter
	recordsScored    prometheus.Counter
	recordsInvalid   prometheus.Counter
	scoringLatency   prometheus.Histogram
	scoredEmployees  prometheus.Gauge
	highRiskCount    prometheus.Gauge

	// Consultation
	consultRequests *prometheus.CounterVec
	consultFailures *prometheus.CounterVec
	consultLatency  prometheus.Histogram

	// Ingest from the relational store and config reloads
	importsTotal  *prometheus.CounterVec
	configReloads *prometheus.CounterVec

	analyticsReports *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Repository
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram

	// Queue
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueUtilization  prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueError prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerIdle              prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level recorders

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates and registers every collector.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "talentgrid",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	m.recordsIngested = m.counter("records_ingested_total", "Employee records accepted for scoring")
	m.recordsDuplicate = m.counter("records_duplicate_total", "Employee records rejected as duplicates of an accepted (cycle, employee)")
	m.recordsScored = m.counter("records_scored_total", "Employee records scored and stored")
	m.recordsInvalid = m.counter("records_invalid_total", "Employee records rejected by validation")
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Time to score one employee record")
	m.scoredEmployees = m.gauge("scored_employees", "Score results currently stored")
	m.highRiskCount = m.gauge("high_risk_employees", "Stored employees at High or Critical flight risk")

	m.consultRequests = m.counterVec("consult_requests_total", "Consultation requests by mode", "mode")
	m.consultFailures = m.counterVec("consult_failures_total", "Consultation failures by reason", "reason")
	m.consultLatency = m.histogram("consult_latency_milliseconds", "Round trip time of consultation calls")

	m.importsTotal = m.counterVec("imports_total", "Cycle imports from the relational store by status", "status")
	m.configReloads = m.counterVec("config_reloads_total", "Configuration reload attempts by status", "status")

	m.analyticsReports = m.counterVec("analytics_reports_total", "Diversity and benchmark reports by kind and status", "kind", "status")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.repositoryUpdateLatency = m.histogram("repository_update_latency_milliseconds", "Time to store one score result")
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds", "Time to answer a repository query")

	m.queueSize = m.gauge("queue_size", "Records waiting in the ingest queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the ingest queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Ingest queue fill ratio (0-1)")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Records enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Records dequeued")
	m.queueEnqueueError = m.counter("queue_enqueue_errors_total", "Records rejected by the queue")

	m.workerCount = m.gauge("worker_count", "Configured scoring workers")
	m.workerActive = m.gauge("worker_active_count", "Workers currently scoring a record")
	m.workerIdle = m.gauge("worker_idle_count", "Workers waiting for a record")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time a worker spends on one record")

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes in use")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
}

// Scoring

func RecordRecordIngested()                  { globalManager.recordsIngested.Inc() }
func RecordRecordDuplicate()                 { globalManager.recordsDuplicate.Inc() }
func RecordRecordScored()                    { globalManager.recordsScored.Inc() }
func RecordRecordInvalid()                   { globalManager.recordsInvalid.Inc() }
func RecordScoringLatency(latencyMs float64) { globalManager.scoringLatency.Observe(latencyMs) }
func UpdateScoredEmployees(count int)        { globalManager.scoredEmployees.Set(float64(count)) }
func UpdateHighRiskCount(count int)          { globalManager.highRiskCount.Set(float64(count)) }

// Consultation

func RecordConsultRequest(mode string)       { globalManager.consultRequests.WithLabelValues(mode).Inc() }
func RecordConsultFailure(reason string)     { globalManager.consultFailures.WithLabelValues(reason).Inc() }
func RecordConsultLatency(latencyMs float64) { globalManager.consultLatency.Observe(latencyMs) }
func RecordImport(status string)             { globalManager.importsTotal.WithLabelValues(status).Inc() }
func RecordConfigReload(status string)       { globalManager.configReloads.WithLabelValues(status).Inc() }

// RecordAnalyticsReport counts one diversity or benchmark report.
func RecordAnalyticsReport(kind, status string) {
	globalManager.analyticsReports.WithLabelValues(kind, status).Inc()
}

// HTTP

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Repository

func RecordRepositoryUpdateLatency(latencyMs float64) { globalManager.repositoryUpdateLatency.Observe(latencyMs) }
func RecordRepositoryQueryLatency(latencyMs float64)  { globalManager.repositoryQueryLatency.Observe(latencyMs) }

// Queue

func UpdateQueueSize(size int)             { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int)     { globalManager.queueCapacity.Set(float64(capacity)) }
func UpdateQueueUtilization(ratio float64) { globalManager.queueUtilization.Set(ratio) }
func RecordQueueEnqueue()                  { globalManager.queueEnqueued.Inc() }
func RecordQueueDequeue()                  { globalManager.queueDequeued.Inc() }
func RecordQueueEnqueueError()             { globalManager.queueEnqueueError.Inc() }

// Workers

func UpdateWorkerCount(count int)                     { globalManager.workerCount.Set(float64(count)) }
func UpdateWorkerActiveCount(count int)               { globalManager.workerActive.Set(float64(count)) }
func UpdateWorkerIdleCount(count int)                 { globalManager.workerIdle.Set(float64(count)) }
func RecordWorkerProcessingLatency(latencyMs float64) { globalManager.workerProcessingLatency.Observe(latencyMs) }

// RecordErrorByComponent counts an error of errorType raised by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// System

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// GetRegistry returns the registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
