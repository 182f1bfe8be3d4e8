package state

import "testing"

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()

	s.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	value, exists := s.GetValue("light.kitchen")
	if !exists || value != "on" {
		t.Errorf("GetValue = %v, %v", value, exists)
	}

	attrs, exists := s.GetAttributes("light.kitchen")
	if !exists || attrs["brightness"] != 128 {
		t.Errorf("GetAttributes = %v, %v", attrs, exists)
	}
}

func TestMemoryStoreMissingEntity(t *testing.T) {
	s := NewMemoryStore()

	if _, exists := s.GetValue("light.kitchen"); exists {
		t.Error("GetValue reported a missing entity as present")
	}
	if _, exists := s.GetAttributes("light.kitchen"); exists {
		t.Error("GetAttributes reported a missing entity as present")
	}
	if s.Exists("light.kitchen") {
		t.Error("Exists = true for missing entity")
	}
}

func TestMemoryStoreEntityIDs(t *testing.T) {
	s := NewMemoryStore()
	s.SetValueAndAttributes("light.kitchen", "on", nil)
	s.SetValueAndAttributes("switch.porch", "off", nil)

	ids := s.EntityIDs()
	if len(ids) != 2 {
		t.Errorf("EntityIDs returned %d IDs, want 2", len(ids))
	}
}

func TestMemoryStoreAttributesAreCopied(t *testing.T) {
	s := NewMemoryStore()

	attrs := map[string]any{"brightness": 128}
	s.SetValueAndAttributes("light.kitchen", "on", attrs)

	// Mutating either the input or the returned map must not affect the store
	attrs["brightness"] = 0
	got, _ := s.GetAttributes("light.kitchen")
	if got["brightness"] != 128 {
		t.Error("store aliased the caller's attribute map")
	}

	got["brightness"] = 1
	again, _ := s.GetAttributes("light.kitchen")
	if again["brightness"] != 128 {
		t.Error("store aliased the returned attribute map")
	}
}

func TestMemoryStoreSubscriberNotified(t *testing.T) {
	s := NewMemoryStore()

	var gotID string
	var gotValue any
	sub := &funcSubscriber{fn: func(entityID string, value any) {
		gotID = entityID
		gotValue = value
	}}
	s.Subscribe(sub)

	s.SetValueAndAttributes("light.kitchen", "on", nil)

	if gotID != "light.kitchen" || gotValue != "on" {
		t.Errorf("subscriber got (%q, %v)", gotID, gotValue)
	}

	s.Unsubscribe(sub)
	gotID = ""
	s.SetValueAndAttributes("switch.porch", "off", nil)
	if gotID != "" {
		t.Error("unsubscribed subscriber was still notified")
	}
}

func TestMemoryStoreRestoreDoesNotNotify(t *testing.T) {
	s := NewMemoryStore()

	notified := false
	s.Subscribe(&funcSubscriber{fn: func(string, any) { notified = true }})

	s.Restore(map[string]EntityState{
		"light.kitchen": {Value: "on"},
	})

	if notified {
		t.Error("Restore notified subscribers")
	}
	if !s.Exists("light.kitchen") {
		t.Error("restored entity missing")
	}
}

func TestMemoryStoreStatesSnapshot(t *testing.T) {
	s := NewMemoryStore()
	s.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	states := s.States()
	if len(states) != 1 {
		t.Fatalf("States returned %d entries, want 1", len(states))
	}
	st := states["light.kitchen"]
	if st.Value != "on" || st.Attributes["brightness"] != 128 {
		t.Errorf("snapshot = %+v", st)
	}
	if st.LastChanged.IsZero() {
		t.Error("LastChanged not set")
	}
}

// funcSubscriber adapts a function to StoreSubscriber for tests.
type funcSubscriber struct {
	fn func(entityID string, value any)
}

func (f *funcSubscriber) OnEntityChanged(entityID string, value any) {
	f.fn(entityID, value)
}
