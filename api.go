package depot

import (
	"iter"
	"math"

	"github.com/TheBitDrifter/mask"
	"github.com/TheBitDrifter/table"
)

// EntityID identifies an entity. Entities carry no data of their own.
type EntityID uint64

// NullEntity is never assigned to a live entity.
const NullEntity EntityID = math.MaxUint64

// MaxComponents bounds the number of distinct component types per process.
// It is also the width of the component mask that is used.
const MaxComponents = 64

// Slot is the stable index of a component type, both in a storage's store
// list and in every entity's component mask.
type Slot uint32

type Storage interface {
	CreateEntity() (EntityID, error)
	CreateNamedEntity(name string) (EntityID, error)
	DeleteEntity(id *EntityID) error
	EnqueueDeleteEntity(id EntityID) error
	EntityCount() int
	EntityName(id EntityID) (string, error)
	Alive(id EntityID) bool
	Entities() []EntityID
	HasAll(id EntityID, components ...Component) (bool, error)
	HasAny(id EntityID, components ...Component) (bool, error)
	ViewIDs(components ...Component) ([]EntityID, error)
	Components() []ComponentInfo
	EntityComponents(id EntityID) ([]ComponentInfo, error)
	Locked() bool
	Lock()
	Unlock()
	Reset() error

	internal() *storage
}

// Store is the payload-agnostic face of a SparseSet. A storage keeps one per
// registered slot.
type Store interface {
	Delete(EntityID)
	Clear()
	Size() int
	Contains(EntityID) bool
	IDs() []EntityID
}

type Component interface {
	Slot() Slot
	Name() string
	ElementType() table.ElementType
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(entityMask mask.Mask) bool
}

type iCursor interface {
	Entities() iter.Seq[EntityID]
	Next() bool
}

type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Len() int
}

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	Slot Slot
	Name string
}

// Warning: internal Dependencies abound!
type Cursor struct {
	// The query to filter entities
	query QueryNode

	// The storage to iterate over
	storage Storage

	// Current iteration state
	snapshot []EntityID
	index    int
	current  EntityID

	// Initialization state
	initialized bool
	locked      bool
}

type ComponentType[T any] struct {
	slot Slot
	name string
	elem table.ElementType
}

type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}
