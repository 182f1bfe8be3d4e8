package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccessor(t *testing.T) (*Accessor, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewAccessor(store), store
}

func TestAccessorGetValue(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	value, ok := acc.Get("light.kitchen")
	require.True(t, ok)
	assert.Equal(t, "on", value)
}

func TestAccessorGetAttribute(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	value, ok := acc.Get("light.kitchen.brightness")
	require.True(t, ok)
	assert.Equal(t, 128, value)

	_, ok = acc.Get("light.kitchen.color")
	assert.False(t, ok, "missing attribute should yield no value")
}

func TestAccessorGetInvalidName(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", nil)

	for _, name := range []string{"light", "a.b.c.d", ""} {
		_, ok := acc.Get(name)
		assert.False(t, ok, "Get(%q) should yield no value", name)
	}
}

func TestAccessorGetMissingEntity(t *testing.T) {
	acc, _ := newTestAccessor(t)

	_, ok := acc.Get("light.kitchen")
	assert.False(t, ok)
	_, ok = acc.Get("light.kitchen.brightness")
	assert.False(t, ok)
}

func TestAccessorSet(t *testing.T) {
	acc, store := newTestAccessor(t)

	acc.Set("light.kitchen", "on", map[string]any{"brightness": 128})

	value, ok := store.GetValue("light.kitchen")
	require.True(t, ok)
	assert.Equal(t, "on", value)

	attrs, _ := store.GetAttributes("light.kitchen")
	assert.Equal(t, 128, attrs["brightness"])
}

func TestAccessorSetMergesAttributes(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{
		"brightness": 128,
		"color":      "warm",
	})

	acc.Set("light.kitchen", "on", map[string]any{"brightness": 64})

	attrs, _ := store.GetAttributes("light.kitchen")
	assert.Equal(t, 64, attrs["brightness"], "explicit override wins")
	assert.Equal(t, "warm", attrs["color"], "untouched attribute preserved")
}

func TestAccessorSetNilAttributesPreserves(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	acc.Set("light.kitchen", "off", nil)

	value, _ := store.GetValue("light.kitchen")
	assert.Equal(t, "off", value)

	attrs, _ := store.GetAttributes("light.kitchen")
	assert.Equal(t, 128, attrs["brightness"], "nil attributes preserves existing")
}

func TestAccessorSetEmptyAttributesClears(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{"brightness": 128})

	// Explicit empty non-nil map clears attributes entirely
	acc.Set("light.kitchen", "off", map[string]any{})

	attrs, ok := store.GetAttributes("light.kitchen")
	require.True(t, ok)
	assert.Empty(t, attrs)
}

func TestAccessorSetInvalidNameIsNoop(t *testing.T) {
	acc, store := newTestAccessor(t)

	acc.Set("light.kitchen.brightness", 128, nil)
	acc.Set("light", "on", nil)

	assert.Empty(t, store.EntityIDs(), "invalid names must not create entities")
}

func TestAccessorExists(t *testing.T) {
	acc, store := newTestAccessor(t)
	store.SetValueAndAttributes("light.kitchen", "on", map[string]any{
		"brightness": 128,
		"color":      nil,
	})

	assert.True(t, acc.Exists("light.kitchen"))
	assert.True(t, acc.Exists("light.kitchen.brightness"))
	assert.False(t, acc.Exists("light.kitchen.color"), "nil attribute does not exist")
	assert.False(t, acc.Exists("light.kitchen.missing"))
	assert.False(t, acc.Exists("switch.porch"))
	assert.False(t, acc.Exists("light"))
	assert.False(t, acc.Exists("a.b.c.d"))
}
