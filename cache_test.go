package depot

import (
	"errors"
	"testing"
)

// TestCacheBasicOperations tests the basic operations of the SimpleCache
func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
		indices[i] = index

		// Indices start at 0 and follow registration order
		if index != i {
			t.Errorf("Index for item %s is %d, expected %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Errorf("Item %s not found in cache", item)
		}
		if index != indices[i] {
			t.Errorf("Index for item %s is %d, expected %d", item, index, indices[i])
		}
	}

	for i, item := range items {
		if cachedItem := *cache.GetItem(indices[i]); cachedItem != item {
			t.Errorf("Item at index %d is %s, expected %s", indices[i], cachedItem, item)
		}
		if cachedItem := *cache.GetItem32(uint32(indices[i])); cachedItem != item {
			t.Errorf("Item at index %d is %s, expected %s", indices[i], cachedItem, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("Found non-existent item in cache")
	}
	if cache.Len() != len(items) {
		t.Errorf("Len() = %d, expected %d", cache.Len(), len(items))
	}
}

func TestCacheCapacity(t *testing.T) {
	cache := FactoryNewCache[int](2)
	if _, err := cache.Register("a", 1); err != nil {
		t.Fatalf("Register a: %v", err)
	}
	if _, err := cache.Register("b", 2); err != nil {
		t.Fatalf("Register b: %v", err)
	}

	index, err := cache.Register("c", 3)
	var capErr CapacityExceededError
	if !errors.As(err, &capErr) {
		t.Fatalf("Register past capacity error = %v, want CapacityExceededError", err)
	}
	if index != -1 {
		t.Errorf("Register past capacity index = %d, want -1", index)
	}
	if capErr.Limit != 2 {
		t.Errorf("Limit = %d, want 2", capErr.Limit)
	}
}

func TestCacheClear(t *testing.T) {
	cache := &SimpleCache[int]{itemIndices: make(map[string]int), maxCapacity: 4}
	cache.Register("a", 1)
	cache.Register("b", 2)
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}
	if _, found := cache.GetIndex("a"); found {
		t.Errorf("key survived Clear")
	}
	if index, _ := cache.Register("c", 3); index != 0 {
		t.Errorf("first index after Clear = %d, want 0", index)
	}
}
