package live

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the bridge's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "sortable").
	Namespace string

	// Subsystem is the metrics subsystem (default: "live").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for drag duration in seconds.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the bridge's Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the drag duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "sortable",
		Subsystem: "live",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the bridge's Prometheus instruments. A nil *Metrics is
// valid everywhere and records nothing, so metrics stay optional.
type Metrics struct {
	activeSessions prometheus.Gauge
	framesTotal    *prometheus.CounterVec
	patchesSent    prometheus.Counter
	reordersTotal  prometheus.Counter
	dragDuration   prometheus.Histogram
	wsErrors       *prometheus.CounterVec
}

// NewMetrics registers and returns the bridge metrics.
//
// Metrics collected:
//   - sortable_live_active_sessions: gauge of open WebSocket sessions
//   - sortable_live_frames_total: counter of client frames by type
//   - sortable_live_patches_sent_total: counter of patches written out
//   - sortable_live_reorders_total: counter of applied reorder steps
//   - sortable_live_drag_duration_seconds: histogram of drag session length
//   - sortable_live_websocket_errors_total: counter of WebSocket errors by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		framesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Total client frames received by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		reordersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reorders_total",
			Help:        "Total reorder steps applied by drag sessions",
			ConstLabels: config.ConstLabels,
		}),

		dragDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drag_duration_seconds",
			Help:        "Drag session duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// SessionOpened records a session going live.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.activeSessions.Inc()
	}
}

// SessionClosed records a session ending.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.activeSessions.Dec()
	}
}

// FrameReceived records one inbound frame.
func (m *Metrics) FrameReceived(frameType string) {
	if m != nil {
		m.framesTotal.WithLabelValues(frameType).Inc()
	}
}

// PatchesSent records an outbound patch batch.
func (m *Metrics) PatchesSent(count int) {
	if m != nil && count > 0 {
		m.patchesSent.Add(float64(count))
	}
}

// ReorderApplied records one applied reorder step.
func (m *Metrics) ReorderApplied() {
	if m != nil {
		m.reordersTotal.Inc()
	}
}

// DragFinished records a completed drag session's duration.
func (m *Metrics) DragFinished(d time.Duration) {
	if m != nil {
		m.dragDuration.Observe(d.Seconds())
	}
}

// WebSocketError records a WebSocket failure.
func (m *Metrics) WebSocketError(errorType string) {
	if m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}
