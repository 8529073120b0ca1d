package depot

import (
	"math/rand"
	"testing"
)

// checkConsistency verifies the sparse/dense mapping of every stored id.
func checkConsistency[T any](t *testing.T, s *SparseSet[T]) {
	t.Helper()
	if len(s.dense) != len(s.denseToID) {
		t.Fatalf("dense has %d values but %d ids", len(s.dense), len(s.denseToID))
	}
	for i, id := range s.denseToID {
		if got := s.denseIndex(id); got != i {
			t.Fatalf("sparse lookup of id %d = %d, want %d", id, got, i)
		}
	}
}

func TestSparseSetSetGet(t *testing.T) {
	tests := []struct {
		name     string
		ids      []EntityID
		pageSize int
	}{
		{"Single page", []EntityID{0, 1, 2, 3}, 16},
		{"Across pages", []EntityID{0, 15, 16, 31, 47}, 16},
		{"Widely separated", []EntityID{3, 1_000_000, 42}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSparseSet[int](tt.pageSize, 0)
			for i, id := range tt.ids {
				ptr := s.Set(id, i*10)
				if *ptr != i*10 {
					t.Errorf("Set(%d) returned %d, want %d", id, *ptr, i*10)
				}
			}
			if s.Size() != len(tt.ids) {
				t.Errorf("Size() = %d, want %d", s.Size(), len(tt.ids))
			}
			for i, id := range tt.ids {
				value, ok := s.Get(id)
				if !ok {
					t.Fatalf("Get(%d) reported absent", id)
				}
				if *value != i*10 {
					t.Errorf("Get(%d) = %d, want %d", id, *value, i*10)
				}
			}
			checkConsistency(t, s)
		})
	}
}

func TestSparseSetOverwrite(t *testing.T) {
	s := NewSparseSet[string](8, 0)
	first := s.Set(5, "a")
	second := s.Set(5, "b")

	if first != second {
		t.Errorf("overwrite moved the value")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d after overwrite, want 1", s.Size())
	}
	if value, _ := s.Get(5); *value != "b" {
		t.Errorf("Get(5) = %q, want %q", *value, "b")
	}
}

func TestSparseSetAbsent(t *testing.T) {
	s := NewSparseSet[int](8, 0)
	s.Set(3, 1)

	for _, id := range []EntityID{0, 4, 7, 8, 1 << 20, NullEntity - 1} {
		if s.Contains(id) {
			t.Errorf("Contains(%d) = true on absent id", id)
		}
		if _, ok := s.Get(id); ok {
			t.Errorf("Get(%d) reported present on absent id", id)
		}
	}

	// Deleting an absent id is a no-op.
	s.Delete(4)
	s.Delete(1 << 20)
	if s.Size() != 1 || !s.Contains(3) {
		t.Errorf("deleting absent ids changed the set")
	}
}

func TestSparseSetLazyPages(t *testing.T) {
	s := NewSparseSet[int](100, 0)
	s.Set(12_345, 1)

	allocated := 0
	for _, page := range s.pages {
		if page != nil {
			allocated++
		}
	}
	if allocated != 1 {
		t.Errorf("%d pages allocated for one id, want 1", allocated)
	}

	// Looking up or deleting in an untouched page must not allocate it.
	s.Delete(50)
	s.Contains(99)
	if s.pages[0] != nil {
		t.Errorf("lookup allocated page 0")
	}
}

func TestSparseSetSwapRemoveLocality(t *testing.T) {
	const n = 1000
	s := NewSparseSet[int](64, 0)
	for i := 0; i < n; i++ {
		s.Set(EntityID(i), i)
	}

	before := make(map[EntityID]int, n)
	for i, id := range s.denseToID {
		before[id] = i
	}

	const deleted = EntityID(10)
	lastID := s.denseToID[n-1]
	s.Delete(deleted)

	// Only the former last element may change position, and it must land in
	// the deleted slot.
	for i, id := range s.denseToID {
		switch id {
		case lastID:
			if i != before[deleted] {
				t.Errorf("last element moved to %d, want %d", i, before[deleted])
			}
		default:
			if i != before[id] {
				t.Errorf("id %d moved from %d to %d", id, before[id], i)
			}
		}
	}
	if value, _ := s.Get(lastID); *value != int(lastID) {
		t.Errorf("moved value = %d, want %d", *value, lastID)
	}
	if s.Contains(deleted) {
		t.Errorf("deleted id still present")
	}
	checkConsistency(t, s)
}

func TestSparseSetDeleteLast(t *testing.T) {
	s := NewSparseSet[int](8, 0)
	s.Set(1, 1)
	s.Set(2, 2)
	s.Delete(2)
	s.Delete(1)

	if !s.IsEmpty() {
		t.Errorf("set not empty after deleting everything")
	}
	if s.Contains(1) || s.Contains(2) {
		t.Errorf("deleted ids still present")
	}
	checkConsistency(t, s)
}

func TestSparseSetRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSparseSet[int](32, 0)
	model := make(map[EntityID]int)

	for step := 0; step < 5000; step++ {
		id := EntityID(rng.Intn(300))
		if rng.Intn(3) == 0 {
			s.Delete(id)
			delete(model, id)
		} else {
			s.Set(id, step)
			model[id] = step
		}
		checkConsistency(t, s)
	}

	if s.Size() != len(model) {
		t.Fatalf("Size() = %d, want %d", s.Size(), len(model))
	}
	for id, want := range model {
		value, ok := s.Get(id)
		if !ok || *value != want {
			t.Errorf("Get(%d) = %v, %v; want %d", id, value, ok, want)
		}
	}
}

func TestSparseSetIDsSnapshot(t *testing.T) {
	s := NewSparseSet[int](8, 0)
	for i := 0; i < 5; i++ {
		s.Set(EntityID(i), i)
	}

	ids := s.IDs()
	for _, id := range ids {
		s.Delete(id)
	}

	if len(ids) != 5 {
		t.Errorf("snapshot has %d ids after deletes, want 5", len(ids))
	}
	if !s.IsEmpty() {
		t.Errorf("set not empty after deleting every snapshot id")
	}
}

func TestSparseSetClear(t *testing.T) {
	s := NewSparseSet[int](8, 4)
	for i := 0; i < 20; i++ {
		s.Set(EntityID(i), i)
	}
	s.Clear()

	if s.Size() != 0 || len(s.Data()) != 0 || len(s.IDs()) != 0 {
		t.Errorf("Clear left data behind")
	}
	if s.Contains(3) {
		t.Errorf("Contains(3) after Clear")
	}

	s.Set(3, 30)
	if value, _ := s.Get(3); *value != 30 {
		t.Errorf("Set after Clear = %d, want 30", *value)
	}
	checkConsistency(t, s)
}
