package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func writeEvents(t *testing.T, path string, events []Event) {
	t.Helper()

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
}

func TestReaderReadsAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	writeEvents(t, path, []Event{
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{Name: "light.kitchen", Value: "on"}},
		{Timestamp: time.Now(), Category: CategoryDelivery, Delivery: &DeliveryEvent{Names: []string{"light.kitchen"}}},
		{Timestamp: time.Now(), Category: CategoryError, Error: &ErrorEventData{Message: "boom"}},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	if count != 3 {
		t.Errorf("got %d events, want 3", count)
	}
}

func TestReaderFiltersByCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	writeEvents(t, path, []Event{
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{Name: "light.kitchen"}},
		{Timestamp: time.Now(), Category: CategoryDelivery, Delivery: &DeliveryEvent{Names: []string{"light.kitchen"}}},
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{Name: "switch.porch"}},
	})

	cat := CategoryState
	reader, err := NewFilteredReader(path, Filter{Category: &cat})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if event.Category != CategoryState {
			t.Errorf("got category %v, want %v", event.Category, CategoryState)
		}
		count++
	}
	if count != 2 {
		t.Errorf("got %d events, want 2", count)
	}
}

func TestReaderFiltersByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	writeEvents(t, path, []Event{
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{Name: "light.kitchen"}},
		{Timestamp: time.Now(), Category: CategoryState, StateChange: &StateChangeEvent{Name: "switch.porch"}},
		{Timestamp: time.Now(), Category: CategoryDelivery, Delivery: &DeliveryEvent{Names: []string{"switch.porch", "light.kitchen"}}},
		{Timestamp: time.Now(), Category: CategorySubscription, Subscription: &SubscriptionEvent{Added: true, Names: []string{"climate.hall"}}},
	})

	reader, err := NewFilteredReader(path, Filter{Name: "light.kitchen"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		count++
	}
	// The state change plus the delivery that carried the name
	if count != 2 {
		t.Errorf("got %d events, want 2", count)
	}
}

func TestReaderFiltersByTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.hlog")
	base := time.Now()
	writeEvents(t, path, []Event{
		{Timestamp: base.Add(-time.Hour), Category: CategoryState, StateChange: &StateChangeEvent{Name: "a.b"}},
		{Timestamp: base, Category: CategoryState, StateChange: &StateChangeEvent{Name: "c.d"}},
		{Timestamp: base.Add(time.Hour), Category: CategoryState, StateChange: &StateChangeEvent{Name: "e.f"}},
	})

	start := base.Add(-time.Minute)
	end := base.Add(time.Minute)
	reader, err := NewFilteredReader(path, Filter{TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.StateChange == nil || event.StateChange.Name != "c.d" {
		t.Errorf("got %+v, want state change for c.d", event)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("expected EOF after one matching event, got %v", err)
	}
}
