package log

import (
	"time"
)

// Event represents one dispatcher log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// InstanceID identifies the dispatcher instance (UUID).
	InstanceID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Type-specific payload (one of these will be set).
	StateChange  *StateChangeEvent  `cbor:"4,keyasint,omitempty"`
	Delivery     *DeliveryEvent     `cbor:"5,keyasint,omitempty"`
	Subscription *SubscriptionEvent `cbor:"6,keyasint,omitempty"`
	Error        *ErrorEventData    `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates a state variable change.
	CategoryState Category = 0
	// CategoryDelivery indicates a notification delivery.
	CategoryDelivery Category = 1
	// CategorySubscription indicates a subscription change.
	CategorySubscription Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryDelivery:
		return "DELIVERY"
	case CategorySubscription:
		return "SUBSCRIPTION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures a state variable changing value.
type StateChangeEvent struct {
	// Name is the full variable name ("domain.entity").
	Name string `cbor:"1,keyasint"`

	// Value is the new value (CBOR-compatible representation).
	Value any `cbor:"2,keyasint,omitempty"`
}

// DeliveryEvent captures a notification message pushed to a consumer queue.
type DeliveryEvent struct {
	// Names are the variable names carried in the message.
	Names []string `cbor:"1,keyasint"`

	// Dropped indicates the destination queue was full and the message
	// was discarded for that consumer.
	Dropped bool `cbor:"2,keyasint,omitempty"`

	// QueueLen is the destination queue depth after the push attempt.
	QueueLen int `cbor:"3,keyasint,omitempty"`
}

// SubscriptionEvent captures a consumer subscribing or unsubscribing.
type SubscriptionEvent struct {
	// Added is true for subscribe, false for unsubscribe.
	Added bool `cbor:"1,keyasint"`

	// Names is the request list as given by the consumer.
	Names []string `cbor:"2,keyasint"`
}

// ErrorEventData captures validation and delivery errors.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
