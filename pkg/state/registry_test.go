package state

import "testing"

func TestRegistryAdd(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	r.add([]string{"light.kitchen"}, q)

	entries := r.lookup("light.kitchen")
	if len(entries) != 1 {
		t.Fatalf("lookup returned %d entries, want 1", len(entries))
	}
	names, exists := entries[q]
	if !exists {
		t.Fatal("queue not registered under key")
	}
	if len(names) != 1 || names[0] != "light.kitchen" {
		t.Errorf("stored names = %v, want [light.kitchen]", names)
	}
}

func TestRegistryAddAttributeQualified(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	// An attribute-qualified name indexes under the entity key, and the
	// stored list is the complete original input.
	names := []string{"light.kitchen.brightness", "switch.porch"}
	r.add(names, q)

	for _, key := range []string{"light.kitchen", "switch.porch"} {
		entries := r.lookup(key)
		if len(entries) != 1 {
			t.Fatalf("lookup(%q) returned %d entries, want 1", key, len(entries))
		}
		stored := entries[q]
		if len(stored) != 2 {
			t.Errorf("lookup(%q) stored list = %v, want full original list", key, stored)
		}
	}
}

func TestRegistryAddSkipsMalformed(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	// Malformed names must not abort processing of later names
	r.add([]string{"bogus", "a.b.c.d", "light.kitchen"}, q)

	if r.lookup("light.kitchen") == nil {
		t.Error("valid name after malformed names was not registered")
	}
	if r.size() != 1 {
		t.Errorf("size = %d, want 1", r.size())
	}
}

func TestRegistryAddIsIdempotent(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	r.add([]string{"light.kitchen"}, q)
	r.add([]string{"light.kitchen"}, q)

	if r.size() != 1 {
		t.Errorf("size after double add = %d, want 1", r.size())
	}
}

func TestRegistryAddCopiesRequestList(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	names := []string{"light.kitchen", "switch.porch"}
	r.add(names, q)

	// Caller mutation of its slice must not corrupt the stored list.
	names[0] = "sensor.mangled"
	names[1] = "sensor.mangled"

	entries := r.lookup("light.kitchen")
	stored := entries[q]
	if stored[0] != "light.kitchen" || stored[1] != "switch.porch" {
		t.Errorf("stored list = %v, want the list as registered", stored)
	}
}

func TestRegistryReAddReplacesList(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	r.add([]string{"light.kitchen"}, q)
	r.add([]string{"light.kitchen", "light.kitchen.brightness"}, q)

	entries := r.lookup("light.kitchen")
	if len(entries[q]) != 2 {
		t.Errorf("stored list = %v, want the replacement list", entries[q])
	}
}

func TestRegistryRemove(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	r.add([]string{"light.kitchen"}, q)
	r.remove([]string{"light.kitchen"}, q)

	if r.lookup("light.kitchen") != nil {
		t.Error("key still present after removing its only queue")
	}
	if r.size() != 0 {
		t.Errorf("size = %d, want 0", r.size())
	}
}

func TestRegistryRemoveContinuesPastMisses(t *testing.T) {
	r := newRegistry()
	q := NewQueue(0)

	r.add([]string{"light.kitchen", "switch.porch"}, q)

	// A missing key must not abort removal of the remaining names
	r.remove([]string{"sensor.unknown", "light.kitchen", "switch.porch"}, q)

	if r.size() != 0 {
		t.Errorf("size = %d, want 0 after removing past a miss", r.size())
	}
}

func TestRegistryRemoveOtherQueueUntouched(t *testing.T) {
	r := newRegistry()
	q1 := NewQueue(0)
	q2 := NewQueue(0)

	r.add([]string{"light.kitchen"}, q1)
	r.add([]string{"light.kitchen"}, q2)
	r.remove([]string{"light.kitchen"}, q1)

	entries := r.lookup("light.kitchen")
	if len(entries) != 1 {
		t.Fatalf("lookup returned %d entries, want 1", len(entries))
	}
	if _, exists := entries[q2]; !exists {
		t.Error("unrelated queue was removed")
	}
}

func TestRegistryRemoveUnknownQueueIsNoop(t *testing.T) {
	r := newRegistry()
	q1 := NewQueue(0)
	q2 := NewQueue(0)

	r.add([]string{"light.kitchen"}, q1)
	r.remove([]string{"light.kitchen"}, q2)

	if r.size() != 1 {
		t.Errorf("size = %d, want 1", r.size())
	}
}
