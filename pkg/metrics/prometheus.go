// Package metrics provides Prometheus metrics for the ringclock widget.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// frameBuckets covers render times from sub-millisecond up to a missed 20 fps deadline.
var frameBuckets = []float64{0.25, 0.5, 1, 2, 5, 10, 25, 50, 100} //nolint:gochecknoglobals // bucket table

// Manager manages all Prometheus metrics for the widget.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Rendering
	framesRendered  prometheus.Counter
	frameLatency    prometheus.Histogram
	overlaysEnabled prometheus.Gauge
	schemeChanges   prometheus.Counter
	schemeIndex     prometheus.Gauge
	buttonFires     *prometheus.CounterVec
	notifications   prometheus.Counter
	appVisible      prometheus.Gauge

	// LED ring
	ledCommits      prometheus.Counter
	ledCommitErrors prometheus.Counter

	// Time sync
	syncAttempts *prometheus.CounterVec
	syncState    prometheus.Gauge
	syncLatency  prometheus.Histogram

	// Input queue
	inputEnqueued prometheus.Counter
	inputDropped  *prometheus.CounterVec
	inputQueued   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ringclock",
		subsystem:        "widget",
		histogramBuckets: frameBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) opts(name, help string) prometheus.Opts {
	return prometheus.Opts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts(m.opts(name, help)))
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts(m.opts(name, help)))
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	o := m.opts(name, help)
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
		Buckets:     m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.framesRendered = m.counter("frames_rendered_total", "Total number of foreground frames drawn")
	m.frameLatency = m.histogram("frame_render_milliseconds", "Time spent in update+draw+LED commit per frame")
	m.overlaysEnabled = m.gauge("overlays_enabled", "Number of overlays enabled in the last frame")
	m.schemeChanges = m.counter("scheme_changes_total", "Total number of colour scheme cycles")
	m.schemeIndex = m.gauge("scheme_index", "Index of the active colour scheme")
	m.notifications = m.counter("notifications_total", "Total number of notifications shown")
	m.appVisible = m.gauge("app_visible", "1 while the app is in the foreground")
	m.buttonFires = auto.NewCounterVec(prometheus.CounterOpts(m.opts("button_fires_total", "Button indicator animations fired by button")),
		[]string{"button"})

	m.ledCommits = m.counter("led_commits_total", "Total number of LED ring buffers committed")
	m.ledCommitErrors = m.counter("led_commit_errors_total", "Total number of failed LED ring commits")

	m.syncAttempts = auto.NewCounterVec(prometheus.CounterOpts(m.opts("sync_attempts_total", "Network time sync attempts by outcome")),
		[]string{"outcome"})
	m.syncState = m.gauge("sync_state", "Current time sync state (0 idle, 1 pending, 2 cooling down, 3 succeeded)")
	m.syncLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sync_latency_milliseconds",
		Help:        "Latency of network time fetches",
		ConstLabels: m.customLabels,
		Buckets:     prometheus.ExponentialBuckets(25, 2, 10),
	})

	m.inputEnqueued = m.counter("input_events_enqueued_total", "Total number of input events accepted")
	m.inputDropped = auto.NewCounterVec(prometheus.CounterOpts(m.opts("input_events_dropped_total", "Input events rejected by reason")),
		[]string{"reason"})
	m.inputQueued = m.gauge("input_events_queued", "Input events waiting for the next frame")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts(m.opts("http_requests_total", "Total number of HTTP requests by endpoint and method")),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		ConstLabels: m.customLabels,
		Buckets:     prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts(m.opts("http_errors_total", "HTTP error responses by endpoint, method and error type")),
		[]string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.gauge("system_gc_pause_milliseconds", "Average GC pause time")
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordFrame records one rendered frame and its latency.
func RecordFrame(latency time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.framesRendered.Inc()
	globalManager.frameLatency.Observe(float64(latency.Microseconds()) / 1000)
}

// UpdateOverlaysEnabled sets the number of overlays enabled in the last frame.
func UpdateOverlaysEnabled(n int) {
	if globalManager.enabled {
		globalManager.overlaysEnabled.Set(float64(n))
	}
}

// RecordSchemeChange records a scheme cycle and the new index.
func RecordSchemeChange(index int) {
	if !globalManager.enabled {
		return
	}
	globalManager.schemeChanges.Inc()
	globalManager.schemeIndex.Set(float64(index))
}

// RecordButtonFire records a button indicator firing.
func RecordButtonFire(button string) {
	if globalManager.enabled {
		globalManager.buttonFires.WithLabelValues(button).Inc()
	}
}

// RecordNotification records a notification being shown.
func RecordNotification() {
	if globalManager.enabled {
		globalManager.notifications.Inc()
	}
}

// UpdateAppVisible records whether the app is in the foreground.
func UpdateAppVisible(visible bool) {
	if !globalManager.enabled {
		return
	}
	v := 0.0
	if visible {
		v = 1
	}
	globalManager.appVisible.Set(v)
}

// RecordLEDCommit records an LED ring commit.
func RecordLEDCommit(err error) {
	if !globalManager.enabled {
		return
	}
	if err != nil {
		globalManager.ledCommitErrors.Inc()
		return
	}
	globalManager.ledCommits.Inc()
}

// RecordSyncAttempt records a time sync attempt by outcome ("success", "status",
// "malformed", "transport", "clock_write").
func RecordSyncAttempt(outcome string, latency time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.syncAttempts.WithLabelValues(outcome).Inc()
	globalManager.syncLatency.Observe(float64(latency.Milliseconds()))
}

// UpdateSyncState sets the sync state gauge.
func UpdateSyncState(state int) {
	if globalManager.enabled {
		globalManager.syncState.Set(float64(state))
	}
}

// RecordInputEnqueued records an accepted input event.
func RecordInputEnqueued() {
	if globalManager.enabled {
		globalManager.inputEnqueued.Inc()
	}
}

// RecordInputDropped records a rejected input event.
func RecordInputDropped(reason string) {
	if globalManager.enabled {
		globalManager.inputDropped.WithLabelValues(reason).Inc()
	}
}

// UpdateInputQueued sets the number of queued input events.
func UpdateInputQueued(n int) {
	if globalManager.enabled {
		globalManager.inputQueued.Set(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	if globalManager.enabled {
		globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}

// RecordSystemGCPauseTime sets the average GC pause.
func RecordSystemGCPauseTime(ms float64) {
	if globalManager.enabled {
		globalManager.systemGCPauseTime.Set(ms)
	}
}
