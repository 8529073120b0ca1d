package depot

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, storage Storage) *Cursor {
	return &Cursor{
		query:   query,
		storage: storage,
		current: NullEntity,
	}
}

// Next advances to the next matching entity. The storage stays locked from
// the first call until Next returns false or Reset is called.
func (c *Cursor) Next() bool {
	if !c.initialized {
		c.initialize()
	}
	sto := c.storage.internal()
	for c.index < len(c.snapshot) {
		id := c.snapshot[c.index]
		c.index++
		if !sto.entities.alive(id) {
			continue
		}
		if c.query.Evaluate(sto.entities.mask(id)) {
			c.current = id
			return true
		}
	}
	c.Reset()
	return false
}

func (c *Cursor) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for c.Next() {
			if !yield(c.current) {
				c.Reset()
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.snapshot = c.candidates()
	c.index = 0
	c.storage.Lock()
	c.locked = true
	c.initialized = true
}

// candidates picks the smallest store among the components every match must
// hold, falling back to all live entities.
func (c *Cursor) candidates() []EntityID {
	sto := c.storage.internal()
	r, ok := c.query.(interface{ required() []Component })
	if !ok || len(r.required()) == 0 {
		return sto.entities.ids()
	}
	var smallest Store
	for _, comp := range r.required() {
		store, ok := sto.store(comp.Slot())
		if !ok {
			return nil
		}
		if smallest == nil || store.Size() < smallest.Size() {
			smallest = store
		}
	}
	return smallest.IDs()
}

func (c *Cursor) Reset() {
	c.index = 0
	c.snapshot = nil
	c.current = NullEntity
	c.initialized = false
	if c.locked {
		c.locked = false
		c.storage.Unlock()
	}
}

func (c *Cursor) CurrentEntity() EntityID {
	return c.current
}

func (c *Cursor) TotalMatched() int {
	sto := c.storage.internal()
	ids := c.snapshot
	if !c.initialized {
		ids = c.candidates()
	}
	total := 0
	for _, id := range ids {
		if sto.entities.alive(id) && c.query.Evaluate(sto.entities.mask(id)) {
			total++
		}
	}
	return total
}
