// Package metrics provides Prometheus instrumentation for the poller.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var defaultCycleBuckets = []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120}

// Manager owns the poller's metrics and the registry they live on.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	cyclesTotal        prometheus.Counter
	cycleDuration      prometheus.Histogram
	trackedAccounts    prometheus.Gauge
	fetchErrors        *prometheus.CounterVec
	notificationsSent  *prometheus.CounterVec
	notificationErrors *prometheus.CounterVec
	summaryPublishes   *prometheus.CounterVec
	stateSaves         prometheus.Counter
}

// NewManager creates a metrics manager on its own registry unless one is supplied
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rankwatch",
		histogramBuckets: defaultCycleBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cyclesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "poller",
		Name:      "cycles_total",
		Help:      "Total number of completed poll cycles",
	})

	m.cycleDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "poller",
		Name:      "cycle_duration_seconds",
		Help:      "Wall time of a poll cycle",
		Buckets:   m.histogramBuckets,
	})

	m.trackedAccounts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "poller",
		Name:      "tracked_accounts",
		Help:      "Number of configured accounts",
	})

	m.fetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "riot",
		Name:      "fetch_errors_total",
		Help:      "Failed statistics calls by operation and error kind",
	}, []string{"operation", "kind"})

	m.notificationsSent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notifications",
		Name:      "sent_total",
		Help:      "Notifications delivered by kind",
	}, []string{"kind"})

	m.notificationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notifications",
		Name:      "errors_total",
		Help:      "Notifications that failed to deliver by kind",
	}, []string{"kind"})

	m.summaryPublishes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "summary",
		Name:      "publishes_total",
		Help:      "Summary publish attempts by resulting action",
	}, []string{"action"})

	m.stateSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "state",
		Name:      "saves_total",
		Help:      "Account state records written",
	})
}

// Registry returns the registry backing the manager
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordCycle records a finished poll cycle
func (m *Manager) RecordCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.cyclesTotal.Inc()
	m.cycleDuration.Observe(d.Seconds())
}

// SetTrackedAccounts sets the number of configured accounts
func (m *Manager) SetTrackedAccounts(n int) {
	if m == nil {
		return
	}
	m.trackedAccounts.Set(float64(n))
}

// RecordFetchError counts a failed statistics call
func (m *Manager) RecordFetchError(operation, kind string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(operation, kind).Inc()
}

// RecordNotification counts a delivered notification
func (m *Manager) RecordNotification(kind string) {
	if m == nil {
		return
	}
	m.notificationsSent.WithLabelValues(kind).Inc()
}

// RecordNotificationError counts a notification that failed to deliver
func (m *Manager) RecordNotificationError(kind string) {
	if m == nil {
		return
	}
	m.notificationErrors.WithLabelValues(kind).Inc()
}

// RecordSummaryPublish counts a summary publish by action
func (m *Manager) RecordSummaryPublish(action string) {
	if m == nil {
		return
	}
	m.summaryPublishes.WithLabelValues(action).Inc()
}

// RecordStateSave counts a persisted account state
func (m *Manager) RecordStateSave() {
	if m == nil {
		return
	}
	m.stateSaves.Inc()
}
