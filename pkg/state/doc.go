// Package state implements state variable access and change notification.
//
// State variables are externally owned named values addressed as
// "domain.entity", with named attributes addressed as
// "domain.entity.attribute". The authoritative value of every variable
// lives in a Store; this package tracks changes to those variables and
// delivers them to interested consumers through asynchronous queues.
//
// # Subscriptions
//
// Consumers (trigger and condition evaluators) subscribe by name. A
// subscription is always indexed by the 2-part "domain.entity" key, even
// when the requested name is attribute-qualified: attribute changes are
// only observable as a side effect of the entity changing as a whole.
//
// # Batching
//
// A single Update call may carry several changed variables. A consumer
// subscribed to more than one of them receives exactly one message
// reflecting the batch's final state for all of its names, not one
// message per variable.
//
// # Last-value cache
//
// The dispatcher records the most recently delivered value of every
// subscribed variable. Messages are built from this cache rather than by
// re-reading the store, so a consumer always evaluates against the value
// that was true at notification time - a second update that lands before
// the consumer reacts cannot change what the first message says.
//
// # Delivery
//
// Delivery is fire-and-forget. Queues are owned by their consumers; the
// dispatcher only pushes to them and never closes them. A full queue
// drops the message for that consumer only and never stalls delivery to
// the rest of the batch.
package state
