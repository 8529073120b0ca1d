package depot

type factory struct{}

var Factory factory

func (f factory) NewStorage(opts ...Option) Storage {
	return newStorage(opts...)
}

func (f factory) NewQuery() Query {
	return newQuery()
}

func (f factory) NewCursor(query QueryNode, storage Storage) *Cursor {
	return newCursor(query, storage)
}

// FactoryNewComponent returns the handle for T, assigning T its process-wide
// slot if it has none yet. It panics once MaxComponents types exist, so
// handles are meant to be declared once at package level.
func FactoryNewComponent[T any]() ComponentType[T] {
	info, err := slotFor[T]()
	if err != nil {
		panic(err)
	}
	return ComponentType[T]{
		slot: info.slot,
		name: info.name,
		elem: info.elem,
	}
}

func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
