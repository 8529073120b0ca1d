package depot

import "github.com/TheBitDrifter/table"

var _ Component = ComponentType[int]{}

// ComponentType is a typed handle for a component. It is what queries,
// HasAll/HasAny and cursors take, and it can resolve its own value for an
// entity.
func (c ComponentType[T]) Slot() Slot {
	return c.slot
}

func (c ComponentType[T]) Name() string {
	return c.name
}

func (c ComponentType[T]) ElementType() table.ElementType {
	return c.elem
}

// GetFromCursor retrieves the component of the entity the cursor is on.
func (c ComponentType[T]) GetFromCursor(cursor *Cursor) *T {
	ok, value := c.GetFromCursorSafe(cursor)
	if !ok {
		return nil
	}
	return value
}

// GetFromCursorSafe reports whether the entity under the cursor holds the
// component and returns it if so.
func (c ComponentType[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	set, ok := typedStore[T](cursor.storage.internal(), c.slot)
	if !ok {
		return false, nil
	}
	value, found := set.Get(cursor.current)
	return found, value
}

// CheckCursor determines if the entity under the cursor holds the component.
func (c ComponentType[T]) CheckCursor(cursor *Cursor) bool {
	ok, _ := c.GetFromCursorSafe(cursor)
	return ok
}

// GetFromEntity retrieves the component value for the given entity.
func (c ComponentType[T]) GetFromEntity(sto Storage, id EntityID) (*T, error) {
	return Get[T](sto, id)
}
