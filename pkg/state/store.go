package state

import (
	"sync"
	"time"
)

// Store is the external variable store that owns the authoritative value
// and attributes of every entity. The dispatch core only calls into it;
// persistence and enumeration semantics belong to the implementation.
type Store interface {
	// GetValue returns the value of an entity, or false if the entity
	// does not exist.
	GetValue(entityID string) (any, bool)

	// GetAttributes returns the attribute map of an entity, or false if
	// the entity does not exist.
	GetAttributes(entityID string) (map[string]any, bool)

	// SetValueAndAttributes writes an entity's value and replaces its
	// attribute map, creating the entity if needed.
	SetValueAndAttributes(entityID string, value any, attributes map[string]any)

	// Exists reports whether the entity exists.
	Exists(entityID string) bool

	// EntityIDs returns the IDs of all known entities.
	EntityIDs() []string
}

// StoreSubscriber is notified after an entity's value or attributes change.
type StoreSubscriber interface {
	// OnEntityChanged is called with the entity ID and its new value.
	OnEntityChanged(entityID string, value any)
}

// EntityState is one entity's value and attributes as held by MemoryStore.
type EntityState struct {
	Value       any
	Attributes  map[string]any
	LastChanged time.Time
}

// MemoryStore is an in-memory Store implementation. It is safe for
// concurrent use and supports change subscribers for wiring a dispatcher.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[string]*EntityState

	subscribers []StoreSubscriber
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[string]*EntityState),
	}
}

// GetValue returns the value of an entity.
func (s *MemoryStore) GetValue(entityID string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ent, exists := s.entities[entityID]
	if !exists {
		return nil, false
	}
	return ent.Value, true
}

// GetAttributes returns a copy of an entity's attribute map.
func (s *MemoryStore) GetAttributes(entityID string) (map[string]any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ent, exists := s.entities[entityID]
	if !exists {
		return nil, false
	}
	attrs := make(map[string]any, len(ent.Attributes))
	for k, v := range ent.Attributes {
		attrs[k] = v
	}
	return attrs, true
}

// SetValueAndAttributes writes an entity's value and attribute map.
// Subscribers are notified outside the lock.
func (s *MemoryStore) SetValueAndAttributes(entityID string, value any, attributes map[string]any) {
	s.mu.Lock()

	attrs := make(map[string]any, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}
	s.entities[entityID] = &EntityState{
		Value:       value,
		Attributes:  attrs,
		LastChanged: time.Now(),
	}

	subs := make([]StoreSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.OnEntityChanged(entityID, value)
	}
}

// Exists reports whether the entity exists.
func (s *MemoryStore) Exists(entityID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.entities[entityID]
	return exists
}

// EntityIDs returns the IDs of all known entities.
func (s *MemoryStore) EntityIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	return ids
}

// States returns a copy of every entity's state, for snapshotting.
func (s *MemoryStore) States() map[string]EntityState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]EntityState, len(s.entities))
	for id, ent := range s.entities {
		attrs := make(map[string]any, len(ent.Attributes))
		for k, v := range ent.Attributes {
			attrs[k] = v
		}
		out[id] = EntityState{
			Value:       ent.Value,
			Attributes:  attrs,
			LastChanged: ent.LastChanged,
		}
	}
	return out
}

// Restore loads entity states in bulk without notifying subscribers.
// Used when reloading a persisted snapshot at startup.
func (s *MemoryStore) Restore(states map[string]EntityState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range states {
		attrs := make(map[string]any, len(st.Attributes))
		for k, v := range st.Attributes {
			attrs[k] = v
		}
		s.entities[id] = &EntityState{
			Value:       st.Value,
			Attributes:  attrs,
			LastChanged: st.LastChanged,
		}
	}
}

// Subscribe adds a change subscriber.
func (s *MemoryStore) Subscribe(sub StoreSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Unsubscribe removes a change subscriber.
func (s *MemoryStore) Unsubscribe(sub StoreSubscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.subscribers {
		if existing == sub {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
