package depot

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/TheBitDrifter/table"
	"github.com/rotisserie/eris"
)

type componentInfo struct {
	slot Slot
	name string
	elem table.ElementType
}

// slots is shared by every storage in the process so that a type keeps the
// same slot (and mask bit) no matter which storage touched it first.
var slots = newSlotRegistry()

type slotRegistry struct {
	mu sync.Mutex
	// byType is the identity index. Type strings are not unique: []a/x.T and
	// []b/x.T both print as "[]x.T".
	byType map[reflect.Type]Slot
	infos  Cache[componentInfo]
}

func newSlotRegistry() *slotRegistry {
	return &slotRegistry{
		byType: make(map[reflect.Type]Slot),
		infos:  FactoryNewCache[componentInfo](MaxComponents),
	}
}

// assign returns the slot of t, assigning the next free one on first use.
// newElem is only called for a type seen for the first time.
func (r *slotRegistry) assign(t reflect.Type, newElem func() table.ElementType) (componentInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if slot, ok := r.byType[t]; ok {
		return *r.infos.GetItem32(uint32(slot)), nil
	}
	next := Slot(r.infos.Len())
	info := componentInfo{
		slot: next,
		name: t.String(),
		elem: newElem(),
	}
	if _, err := r.infos.Register(t.String()+"#"+strconv.Itoa(int(next)), info); err != nil {
		return componentInfo{}, eris.Wrapf(
			CapacityExceededError{Resource: "component type", Limit: MaxComponents},
			"registering component %q", info.name,
		)
	}
	r.byType[t] = next
	return info, nil
}

// lookup reports the slot of t without assigning one.
func (r *slotRegistry) lookup(t reflect.Type) (componentInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.byType[t]
	if !ok {
		return componentInfo{}, false
	}
	return *r.infos.GetItem32(uint32(slot)), true
}

func (r *slotRegistry) at(slot Slot) componentInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.infos.GetItem32(uint32(slot))
}

func slotFor[T any]() (componentInfo, error) {
	return slots.assign(reflect.TypeFor[T](), func() table.ElementType {
		return table.FactoryNewElementType[T]()
	})
}

func lookupSlot[T any]() (componentInfo, bool) {
	return slots.lookup(reflect.TypeFor[T]())
}

func infoAt(slot Slot) componentInfo {
	return slots.at(slot)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
