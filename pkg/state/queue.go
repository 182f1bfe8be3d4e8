package state

// MessageTagState tags messages carrying state variable changes.
const MessageTagState = "state"

// DefaultQueueBuffer is the default queue capacity.
const DefaultQueueBuffer = 64

// Message is one notification delivered to a consumer queue.
type Message struct {
	// Tag identifies the message kind; the dispatcher always sends
	// MessageTagState.
	Tag string

	// Values maps each of the consumer's requested names that has ever
	// been notified to its most recently delivered value.
	Values map[string]any

	// Context is the opaque payload supplied by the caller of Update,
	// delivered verbatim to every consumer affected by the same batch.
	Context any
}

// Queue is an asynchronous message channel owned by a consumer. Queue
// identity is by reference: the dispatcher keys its registry on the
// *Queue pointer. The dispatcher only pushes to a queue and never closes
// it; draining is the owner's responsibility.
type Queue struct {
	ch chan Message
}

// NewQueue creates a queue with the given buffer capacity. A capacity of
// zero or less uses DefaultQueueBuffer.
func NewQueue(buffer int) *Queue {
	if buffer <= 0 {
		buffer = DefaultQueueBuffer
	}
	return &Queue{ch: make(chan Message, buffer)}
}

// Push appends a message without blocking. Returns false if the queue is
// full, in which case the message is dropped for this consumer only.
func (q *Queue) Push(msg Message) bool {
	select {
	case q.ch <- msg:
		return true
	default:
		return false
	}
}

// C returns the receive side of the queue for the owning consumer.
func (q *Queue) C() <-chan Message {
	return q.ch
}

// Len returns the number of messages currently queued.
func (q *Queue) Len() int {
	return len(q.ch)
}
