package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRecords(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewManager(WithRegistry(registry), WithNamespace("test"))
	require.Same(t, registry, m.Registry())

	m.RecordCycle(2 * time.Second)
	m.RecordCycle(3 * time.Second)
	m.SetTrackedAccounts(4)
	m.RecordFetchError("match_ids", "transient")
	m.RecordNotification("match")
	m.RecordNotification("match")
	m.RecordNotificationError("standing_change")
	m.RecordSummaryPublish("edited")
	m.RecordStateSave()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cyclesTotal))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.trackedAccounts))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.fetchErrors.WithLabelValues("match_ids", "transient")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.notificationsSent.WithLabelValues("match")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notificationErrors.WithLabelValues("standing_change")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.summaryPublishes.WithLabelValues("edited")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.stateSaves))
	assert.Equal(t, 1, testutil.CollectAndCount(m.cycleDuration))

	count, err := testutil.GatherAndCount(registry, "test_poller_cycles_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestManagersDoNotShareRegistries(t *testing.T) {
	// two managers with default registries must not panic on duplicate registration
	a := NewManager()
	b := NewManager()
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager
	assert.NotPanics(t, func() {
		m.RecordCycle(time.Second)
		m.SetTrackedAccounts(1)
		m.RecordFetchError("x", "y")
		m.RecordNotification("match")
		m.RecordNotificationError("match")
		m.RecordSummaryPublish("none")
		m.RecordStateSave()
	})
	assert.Nil(t, m.Registry())
}
