package state

// lastValues records the most recently delivered value of every variable
// that has at least one subscriber. Entries are overwritten on every
// change and live for the lifetime of the dispatcher; stale entries for
// variables no longer subscribed are harmless. Guarded by the
// Dispatcher's mutex.
type lastValues struct {
	vals map[string]any
}

func newLastValues() *lastValues {
	return &lastValues{vals: make(map[string]any)}
}

// record unconditionally overwrites the cached value for name.
func (c *lastValues) record(name string, value any) {
	c.vals[name] = value
}

// lookup returns a mapping for the subset of names that have ever been
// recorded. Unknown names are omitted, never defaulted.
func (c *lastValues) lookup(names []string) map[string]any {
	out := make(map[string]any)
	for _, name := range names {
		if v, exists := c.vals[name]; exists {
			out[name] = v
		}
	}
	return out
}
