package state

import (
	"time"

	"github.com/hestia-automation/hestia-go/pkg/log"
)

// Accessor resolves state variable names against a Store. It is the thin
// read/write surface exposed to script and command handlers; all
// validation failures are handled here (logged, operation skipped) and
// never propagate to the caller.
type Accessor struct {
	store  Store
	logger log.Logger
}

// NewAccessor creates an accessor over the given store.
func NewAccessor(store Store) *Accessor {
	return &Accessor{
		store:  store,
		logger: log.NoopLogger{},
	}
}

// SetLogger sets the event logger. Pass nil to disable logging.
func (a *Accessor) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	a.logger = logger
}

// Get resolves a 2- or 3-part name. A 2-part name yields the entity's
// value, a 3-part name the named attribute. An invalid name or an
// unresolvable entity or attribute yields no value, never an error.
func (a *Accessor) Get(name string) (any, bool) {
	entityID, attr, ok := splitAttribute(name)
	if !ok {
		return nil, false
	}

	if attr == "" {
		return a.store.GetValue(entityID)
	}

	attrs, exists := a.store.GetAttributes(entityID)
	if !exists {
		return nil, false
	}
	value, exists := attrs[attr]
	if !exists || value == nil {
		return nil, false
	}
	return value, true
}

// Set writes a state variable, creating the entity if it does not exist.
// The name must be exactly 2-part; an invalid name is logged and the
// operation is a no-op.
//
// Attribute handling: a nil attributes map preserves the entity's
// existing attributes; a non-nil map is merged over them; an explicit
// empty non-nil map clears them entirely.
func (a *Accessor) Set(name string, value any, attributes map[string]any) {
	if !ValidEntityID(name) {
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: "invalid state variable name: " + name + " (should be 'domain.entity')",
				Context: "set",
			},
		})
		return
	}

	var updated map[string]any
	switch {
	case attributes == nil:
		existing, _ := a.store.GetAttributes(name)
		updated = existing
	case len(attributes) == 0:
		// Explicit empty map clears all attributes.
		updated = nil
	default:
		existing, _ := a.store.GetAttributes(name)
		updated = make(map[string]any, len(existing)+len(attributes))
		for k, v := range existing {
			updated[k] = v
		}
		for k, v := range attributes {
			updated[k] = v
		}
	}

	a.store.SetValueAndAttributes(name, value, updated)
}

// Exists reports whether the name resolves: the entity must exist and,
// for a 3-part name, the attribute must be present and non-nil.
func (a *Accessor) Exists(name string) bool {
	entityID, attr, ok := splitAttribute(name)
	if !ok {
		return false
	}
	if !a.store.Exists(entityID) {
		return false
	}
	if attr == "" {
		return true
	}

	attrs, exists := a.store.GetAttributes(entityID)
	if !exists {
		return false
	}
	value, exists := attrs[attr]
	return exists && value != nil
}
