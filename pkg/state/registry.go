package state

// registry maps each 2-part subscription key to the queues subscribed to
// it, and for each queue the original list of names it asked about. Not
// safe for concurrent use on its own; the Dispatcher's mutex guards it.
type registry struct {
	// byKey[key][queue] holds the complete original request list, so a
	// lookup for any one key returns all sibling names the consumer
	// cares about.
	byKey map[string]map[*Queue][]string
}

func newRegistry() *registry {
	return &registry{
		byKey: make(map[string]map[*Queue][]string),
	}
}

// add registers q for every valid name in names, storing the entire
// original list under each name's subscription key. Malformed names are
// skipped without aborting the rest of the call. Re-registering the same
// queue under a key replaces its request list.
func (r *registry) add(names []string, q *Queue) {
	// Store a copy of the request list; the caller keeps ownership of the
	// slice it passed in and may reuse it.
	stored := make([]string, len(names))
	copy(stored, names)
	for _, name := range names {
		key, ok := SubscriptionKey(name)
		if !ok {
			continue
		}
		entries, exists := r.byKey[key]
		if !exists {
			entries = make(map[*Queue][]string)
			r.byKey[key] = entries
		}
		entries[q] = stored
	}
}

// remove unregisters q from every valid name in names. A missing key or
// a queue not registered under a key is a no-op for that name; the rest
// of the list is still processed, mirroring add.
func (r *registry) remove(names []string, q *Queue) {
	for _, name := range names {
		key, ok := SubscriptionKey(name)
		if !ok {
			continue
		}
		entries, exists := r.byKey[key]
		if !exists {
			continue
		}
		if _, exists := entries[q]; !exists {
			continue
		}
		delete(entries, q)
		if len(entries) == 0 {
			delete(r.byKey, key)
		}
	}
}

// lookup returns the (queue -> request list) entries for a subscription
// key, or nil if nothing is registered under it.
func (r *registry) lookup(key string) map[*Queue][]string {
	return r.byKey[key]
}

// size returns the number of (key, queue) registrations.
func (r *registry) size() int {
	n := 0
	for _, entries := range r.byKey {
		n += len(entries)
	}
	return n
}
