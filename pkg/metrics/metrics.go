// Package metrics defines the Prometheus collectors for the state
// dispatcher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the dispatcher.
type Metrics struct {
	StateUpdates           prometheus.Counter
	NotificationsDelivered prometheus.Counter
	NotificationsDropped   prometheus.Counter
	ActiveSubscriptions    prometheus.Gauge
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates and registers all metrics with a specific registerer.
// Tests use this with a private registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StateUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "hestia_state_updates_total",
			Help: "Total number of state variable changes processed by the dispatcher",
		}),
		NotificationsDelivered: factory.NewCounter(prometheus.CounterOpts{
			Name: "hestia_notifications_delivered_total",
			Help: "Total number of notification messages pushed onto consumer queues",
		}),
		NotificationsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "hestia_notifications_dropped_total",
			Help: "Total number of notification messages dropped because a consumer queue was full",
		}),
		ActiveSubscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "hestia_active_subscriptions",
			Help: "Current number of (variable, consumer) subscription registrations",
		}),
	}
}

// AddStateUpdates adds n to the state updates counter.
func (m *Metrics) AddStateUpdates(n int) {
	m.StateUpdates.Add(float64(n))
}

// IncNotificationsDelivered increments the delivered counter by 1.
func (m *Metrics) IncNotificationsDelivered() {
	m.NotificationsDelivered.Inc()
}

// IncNotificationsDropped increments the dropped counter by 1.
func (m *Metrics) IncNotificationsDropped() {
	m.NotificationsDropped.Inc()
}

// SetActiveSubscriptions sets the active subscriptions gauge.
func (m *Metrics) SetActiveSubscriptions(n int) {
	m.ActiveSubscriptions.Set(float64(n))
}
