package state

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hestia-automation/hestia-go/pkg/log"
	"github.com/hestia-automation/hestia-go/pkg/metrics"
)

// Dispatcher delivers state variable change notifications to subscribed
// consumer queues. It owns the subscription registry and the last-value
// cache exclusively; one instance is constructed at startup and passed
// by reference to all call sites.
//
// Subscribe, Unsubscribe and Update may be called concurrently. One
// mutex serializes all registry and cache mutation, so a consumer's
// request list is never observed half-written and every call sees either
// the old or the new registry state, never a partial one.
type Dispatcher struct {
	mu   sync.Mutex
	subs *registry
	last *lastValues

	// instanceID correlates log events from this dispatcher.
	instanceID string

	logger  log.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates a dispatcher with no subscriptions.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subs:       newRegistry(),
		last:       newLastValues(),
		instanceID: uuid.NewString(),
		logger:     log.NoopLogger{},
	}
}

// SetLogger sets the event logger. Pass nil to disable logging.
func (d *Dispatcher) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// SetMetrics sets the metrics collectors. Optional.
func (d *Dispatcher) SetMetrics(m *metrics.Metrics) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.metrics = m
}

// InstanceID returns the dispatcher's unique instance identifier.
func (d *Dispatcher) InstanceID() string {
	return d.instanceID
}

// Subscribe registers q to be notified of changes to the given state
// variable names. Each valid name, attribute-qualified or not, is
// indexed under its 2-part subscription key together with the complete
// original list, so one message covers all sibling names. Malformed
// names are logged and skipped; they never abort the rest of the call.
// Subscribing the same queue to a key it already holds replaces the
// stored request list.
func (d *Dispatcher) Subscribe(names []string, q *Queue) {
	d.mu.Lock()
	d.subs.add(names, q)
	size := d.subs.size()
	m := d.metrics
	logger := d.logger
	d.mu.Unlock()

	if m != nil {
		m.SetActiveSubscriptions(size)
	}
	for _, name := range names {
		if !ValidName(name) {
			logInvalidName(logger, d.instanceID, name, "subscribe")
		}
	}
	d.logSubscription(logger, true, names)
}

// Unsubscribe removes q's registrations for the given names. Names that
// are malformed, unknown, or not registered for q are skipped; the rest
// of the list is still processed, symmetric with Subscribe.
func (d *Dispatcher) Unsubscribe(names []string, q *Queue) {
	d.mu.Lock()
	d.subs.remove(names, q)
	size := d.subs.size()
	m := d.metrics
	logger := d.logger
	d.mu.Unlock()

	if m != nil {
		m.SetActiveSubscriptions(size)
	}
	d.logSubscription(logger, false, names)
}

// Update delivers notifications for a batch of changed state variables.
// For every changed name that is a registered subscription key, the new
// value is recorded in the last-value cache and the key's subscribers
// are collected. Each affected queue then receives exactly one message
// whose value map is the cache lookup of that queue's full request list,
// paired with the verbatim context.
//
// Delivery is fire-and-forget: messages for each queue are built from a
// cache snapshot taken under the lock, then pushed outside it, so a full
// or slow queue cannot stall delivery to other consumers. Changed names
// with no subscribers are ignored entirely and are not cached.
func (d *Dispatcher) Update(changed map[string]any, context any) {
	d.mu.Lock()

	pending := make(map[*Queue][]string)
	var recorded []log.StateChangeEvent
	for name, value := range changed {
		entries := d.subs.lookup(name)
		if len(entries) == 0 {
			continue
		}
		d.last.record(name, value)
		recorded = append(recorded, log.StateChangeEvent{Name: name, Value: value})
		for q, names := range entries {
			pending[q] = names
		}
	}

	// Build messages while still holding the lock so every message
	// reflects the batch's final cached state.
	msgs := make(map[*Queue]Message, len(pending))
	for q, names := range pending {
		msgs[q] = Message{
			Tag:     MessageTagState,
			Values:  d.last.lookup(names),
			Context: context,
		}
	}

	logger := d.logger
	m := d.metrics
	d.mu.Unlock()

	if m != nil {
		m.AddStateUpdates(len(changed))
	}
	for i := range recorded {
		logger.Log(log.Event{
			Timestamp:   time.Now(),
			InstanceID:  d.instanceID,
			Category:    log.CategoryState,
			StateChange: &recorded[i],
		})
	}
	if len(msgs) == 0 {
		return
	}

	for q, msg := range msgs {
		delivered := q.Push(msg)
		if m != nil {
			if delivered {
				m.IncNotificationsDelivered()
			} else {
				m.IncNotificationsDropped()
			}
		}
		logger.Log(log.Event{
			Timestamp:  time.Now(),
			InstanceID: d.instanceID,
			Category:   log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{
				Names:    sortedKeys(msg.Values),
				Dropped:  !delivered,
				QueueLen: q.Len(),
			},
		})
	}
}

// LastValues returns the most recently delivered values for the subset
// of names that have ever been notified. Trigger evaluation uses this
// rather than reading the store, which may have already moved on.
func (d *Dispatcher) LastValues(names []string) map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last.lookup(names)
}

// SubscriptionCount returns the number of (key, queue) registrations.
func (d *Dispatcher) SubscriptionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subs.size()
}

// OnEntityChanged implements StoreSubscriber: a single store write is
// dispatched as a one-variable batch with no context.
func (d *Dispatcher) OnEntityChanged(entityID string, value any) {
	d.Update(map[string]any{entityID: value}, nil)
}

func (d *Dispatcher) logSubscription(logger log.Logger, added bool, names []string) {
	logger.Log(log.Event{
		Timestamp:  time.Now(),
		InstanceID: d.instanceID,
		Category:   log.CategorySubscription,
		Subscription: &log.SubscriptionEvent{
			Added: added,
			Names: names,
		},
	})
}

// logInvalidName reports a malformed name at the boundary. The operation
// itself is a no-op for that name; nothing propagates to the caller.
func logInvalidName(logger log.Logger, instanceID, name, context string) {
	logger.Log(log.Event{
		Timestamp:  time.Now(),
		InstanceID: instanceID,
		Category:   log.CategoryError,
		Error: &log.ErrorEventData{
			Message: "invalid state variable name: " + name,
			Context: context,
		},
	})
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Compile-time interface satisfaction check.
var _ StoreSubscriber = (*Dispatcher)(nil)
