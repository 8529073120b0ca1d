package depot

import (
	"github.com/TheBitDrifter/mask"
)

const defaultEntityName = "Entity"

// entities owns identity allocation and the per-entity component masks.
// An id is live iff its mask is present in masks.
type entities struct {
	masks       *SparseSet[mask.Mask]
	names       map[EntityID]string
	free        []EntityID
	nextID      EntityID
	maxEntities uint64
}

func newEntities(cfg Config) *entities {
	return &entities{
		masks:       NewSparseSet[mask.Mask](cfg.PageSize, cfg.InitialCapacity),
		names:       make(map[EntityID]string),
		maxEntities: cfg.MaxEntities,
	}
}

func slotMask(slots ...Slot) mask.Mask {
	var m mask.Mask
	for _, s := range slots {
		m.Mark(uint32(s))
	}
	return m
}

func (en *entities) create(name string) (EntityID, error) {
	var id EntityID
	if n := len(en.free); n > 0 {
		id = en.free[n-1]
		en.free = en.free[:n-1]
	} else {
		if uint64(en.nextID) >= en.maxEntities || en.nextID == NullEntity {
			return NullEntity, CapacityExceededError{Resource: "entity", Limit: en.maxEntities}
		}
		id = en.nextID
		en.nextID++
	}

	en.masks.Set(id, mask.Mask{})
	if name != "" {
		en.names[id] = name
	}
	return id, nil
}

// validate classifies id as invalid (null or never allocated), dead, or live.
func (en *entities) validate(id EntityID) error {
	if id == NullEntity || id >= en.nextID {
		return InvalidEntityError{ID: id}
	}
	if !en.masks.Contains(id) {
		return DeadEntityError{ID: id}
	}
	return nil
}

func (en *entities) alive(id EntityID) bool {
	return en.validate(id) == nil
}

func (en *entities) delete(id EntityID) {
	en.masks.Delete(id)
	delete(en.names, id)
	en.free = append(en.free, id)
}

func (en *entities) mask(id EntityID) mask.Mask {
	m, ok := en.masks.Get(id)
	if !ok {
		return mask.Mask{}
	}
	return *m
}

func (en *entities) has(id EntityID, slot Slot) bool {
	m, ok := en.masks.Get(id)
	if !ok {
		return false
	}
	return m.ContainsAll(slotMask(slot))
}

func (en *entities) setBit(id EntityID, slot Slot, value bool) {
	m, ok := en.masks.Get(id)
	if !ok {
		return
	}
	if value {
		m.Mark(uint32(slot))
		return
	}
	m.Unmark(uint32(slot))
}

func (en *entities) name(id EntityID) string {
	if name, ok := en.names[id]; ok {
		return name
	}
	return defaultEntityName
}

func (en *entities) count() int {
	return en.masks.Size()
}

func (en *entities) ids() []EntityID {
	return en.masks.IDs()
}

func (en *entities) reset() {
	en.masks.Clear()
	clear(en.names)
	en.free = en.free[:0]
	en.nextID = 0
}
