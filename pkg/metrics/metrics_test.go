package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.AddStateUpdates(3)
	m.IncNotificationsDelivered()
	m.IncNotificationsDelivered()
	m.IncNotificationsDropped()
	m.SetActiveSubscriptions(5)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.StateUpdates))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NotificationsDelivered))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsDropped))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ActiveSubscriptions))
}
