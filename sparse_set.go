package depot

var _ Store = &SparseSet[int]{}

// tombstone marks a sparse entry with no dense slot behind it.
const tombstone = -1

// SparseSet maps EntityID -> T. Values live in a packed dense slice; ids are
// translated through a paged sparse table so that a handful of large ids do
// not force one huge allocation.
//
// Pointers returned by Set and Get stay valid until the next Set of a new id
// or Delete on the same set.
type SparseSet[T any] struct {
	pages     [][]int
	dense     []T
	denseToID []EntityID
	pageSize  int
}

func NewSparseSet[T any](pageSize, capacity int) *SparseSet[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if capacity < 0 {
		capacity = 0
	}
	return &SparseSet[T]{
		pageSize:  pageSize,
		dense:     make([]T, 0, capacity),
		denseToID: make([]EntityID, 0, capacity),
	}
}

func (s *SparseSet[T]) locate(id EntityID) (page, offset int) {
	size := uint64(s.pageSize)
	return int(uint64(id) / size), int(uint64(id) % size)
}

// setDenseIndex records id -> index without touching the dense slice.
func (s *SparseSet[T]) setDenseIndex(id EntityID, index int) {
	page, offset := s.locate(id)
	if page >= len(s.pages) {
		grown := make([][]int, page+1)
		copy(grown, s.pages)
		s.pages = grown
	}
	if s.pages[page] == nil {
		if index == tombstone {
			return
		}
		entries := make([]int, s.pageSize)
		for i := range entries {
			entries[i] = tombstone
		}
		s.pages[page] = entries
	}
	s.pages[page][offset] = index
}

func (s *SparseSet[T]) denseIndex(id EntityID) int {
	page, offset := s.locate(id)
	if page < len(s.pages) && s.pages[page] != nil {
		return s.pages[page][offset]
	}
	return tombstone
}

// Set adds or overwrites the value for id and returns a pointer to it.
func (s *SparseSet[T]) Set(id EntityID, value T) *T {
	if index := s.denseIndex(id); index != tombstone {
		s.dense[index] = value
		return &s.dense[index]
	}
	s.setDenseIndex(id, len(s.dense))
	s.dense = append(s.dense, value)
	s.denseToID = append(s.denseToID, id)
	return &s.dense[len(s.dense)-1]
}

func (s *SparseSet[T]) Get(id EntityID) (*T, bool) {
	index := s.denseIndex(id)
	if index == tombstone {
		return nil, false
	}
	return &s.dense[index], true
}

// Delete swaps the last dense element into the deleted slot and pops.
func (s *SparseSet[T]) Delete(id EntityID) {
	deleted := s.denseIndex(id)
	if deleted == tombstone || len(s.dense) == 0 {
		return
	}
	last := len(s.dense) - 1
	lastID := s.denseToID[last]

	s.dense[deleted] = s.dense[last]
	s.denseToID[deleted] = lastID
	s.setDenseIndex(lastID, deleted)
	s.setDenseIndex(id, tombstone)

	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.denseToID = s.denseToID[:last]
}

func (s *SparseSet[T]) Contains(id EntityID) bool {
	return s.denseIndex(id) != tombstone
}

func (s *SparseSet[T]) Size() int {
	return len(s.dense)
}

func (s *SparseSet[T]) IsEmpty() bool {
	return len(s.dense) == 0
}

// IDs returns a copy of the dense id list. Callers may mutate the set while
// ranging over the result.
func (s *SparseSet[T]) IDs() []EntityID {
	ids := make([]EntityID, len(s.denseToID))
	copy(ids, s.denseToID)
	return ids
}

// Data exposes the dense values. Do not retain or append to it.
func (s *SparseSet[T]) Data() []T {
	return s.dense
}

func (s *SparseSet[T]) Clear() {
	clear(s.dense)
	s.dense = s.dense[:0]
	s.denseToID = s.denseToID[:0]
	s.pages = nil
}
