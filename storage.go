package depot

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var _ Storage = &storage{}

type storage struct {
	cfg      Config
	logger   zerolog.Logger
	entities *entities
	// stores is indexed by slot; nil means not registered with this storage.
	stores  []Store
	locks   int
	opQueue opQueue
}

func newStorage(opts ...Option) Storage {
	sto := &storage{
		cfg:     DefaultConfig(),
		logger:  zerolog.Nop(),
		stores:  make([]Store, MaxComponents),
		opQueue: newOpQueue(),
	}
	for _, opt := range opts {
		opt(sto)
	}
	sto.entities = newEntities(sto.cfg)
	return sto
}

func (sto *storage) internal() *storage {
	return sto
}

func (sto *storage) CreateEntity() (EntityID, error) {
	return sto.CreateNamedEntity("")
}

// CreateNamedEntity creates an entity with a debug name. Names are only
// used for diagnostics.
func (sto *storage) CreateNamedEntity(name string) (EntityID, error) {
	id, err := sto.entities.create(name)
	if err != nil {
		return NullEntity, err
	}
	sto.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Str("entity_name", sto.entities.name(id)).
		Msg("created entity")
	return id, nil
}

// DeleteEntity removes the entity and all of its components, then overwrites
// the caller's handle with NullEntity. The id becomes eligible for reuse.
func (sto *storage) DeleteEntity(id *EntityID) error {
	if id == nil {
		return InvalidEntityError{ID: NullEntity}
	}
	if err := sto.entities.validate(*id); err != nil {
		return err
	}
	sto.deleteEntity(*id)
	*id = NullEntity
	return nil
}

func (sto *storage) deleteEntity(id EntityID) {
	name := sto.entities.name(id)
	m := sto.entities.mask(id)
	for slot, store := range sto.stores {
		if store == nil {
			continue
		}
		if m.ContainsAll(slotMask(Slot(slot))) {
			store.Delete(id)
		}
	}
	sto.entities.delete(id)
	sto.logger.Debug().
		Uint64("entity_id", uint64(id)).
		Str("entity_name", name).
		Msg("deleted entity")
}

func (sto *storage) EntityCount() int {
	return sto.entities.count()
}

func (sto *storage) EntityName(id EntityID) (string, error) {
	if err := sto.entities.validate(id); err != nil {
		return "", err
	}
	return sto.entities.name(id), nil
}

func (sto *storage) Alive(id EntityID) bool {
	return sto.entities.alive(id)
}

// Entities returns a snapshot of all live ids.
func (sto *storage) Entities() []EntityID {
	return sto.entities.ids()
}

func (sto *storage) HasAll(id EntityID, components ...Component) (bool, error) {
	if err := sto.checkComponents(id, components); err != nil {
		return false, err
	}
	return newLeafNode(components).Evaluate(sto.entities.mask(id)), nil
}

func (sto *storage) HasAny(id EntityID, components ...Component) (bool, error) {
	if err := sto.checkComponents(id, components); err != nil {
		return false, err
	}
	return sto.entities.mask(id).ContainsAny(componentMask(components)), nil
}

func (sto *storage) checkComponents(id EntityID, components []Component) error {
	if err := sto.entities.validate(id); err != nil {
		return err
	}
	for _, c := range components {
		if sto.stores[c.Slot()] == nil {
			return UnregisteredComponentError{Component: c.Name()}
		}
	}
	return nil
}

// ViewIDs returns the ids of all entities holding every given component.
func (sto *storage) ViewIDs(components ...Component) ([]EntityID, error) {
	slots := make([]Slot, len(components))
	for i, c := range components {
		slots[i] = c.Slot()
	}
	v, err := newView(sto, slots...)
	if err != nil {
		return nil, err
	}
	return v.IDs(), nil
}

// Components lists the component types registered with this storage.
func (sto *storage) Components() []ComponentInfo {
	var infos []ComponentInfo
	for slot, store := range sto.stores {
		if store == nil {
			continue
		}
		info := infoAt(Slot(slot))
		infos = append(infos, ComponentInfo{Slot: info.slot, Name: info.name})
	}
	return infos
}

func (sto *storage) EntityComponents(id EntityID) ([]ComponentInfo, error) {
	if err := sto.entities.validate(id); err != nil {
		return nil, err
	}
	var infos []ComponentInfo
	for _, info := range sto.Components() {
		if sto.entities.has(id, info.Slot) {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (sto *storage) Locked() bool {
	return sto.locks > 0
}

// Lock defers queued operations until the matching Unlock. Locks nest.
func (sto *storage) Lock() {
	sto.locks++
}

func (sto *storage) Unlock() {
	if sto.locks == 0 {
		return
	}
	sto.locks--
	if sto.locks > 0 {
		return
	}
	err := sto.processOperationQueue()
	if err != nil {
		panic(err)
	}
}

// Reset drops every entity and component value. Registrations survive. A
// locked storage cannot be reset, since that would discard queued operations
// and the entities an iteration is walking.
func (sto *storage) Reset() error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	for _, store := range sto.stores {
		if store != nil {
			store.Clear()
		}
	}
	sto.entities.reset()
	sto.opQueue.reset()
	sto.logger.Debug().Msg("reset storage")
	return nil
}

func (sto *storage) store(slot Slot) (Store, bool) {
	if int(slot) >= len(sto.stores) || sto.stores[slot] == nil {
		return nil, false
	}
	return sto.stores[slot], true
}

func typedStore[T any](sto *storage, slot Slot) (*SparseSet[T], bool) {
	store, ok := sto.store(slot)
	if !ok {
		return nil, false
	}
	set, ok := store.(*SparseSet[T])
	return set, ok
}

// RegisterComponent creates the store for T. Registering T twice with the
// same storage is an error.
func RegisterComponent[T any](sto Storage) error {
	_, err := registerComponent[T](sto.internal())
	return err
}

func registerComponent[T any](sto *storage) (*SparseSet[T], error) {
	info, err := slotFor[T]()
	if err != nil {
		return nil, err
	}
	if sto.stores[info.slot] != nil {
		return nil, DuplicateRegistrationError{Component: info.name}
	}
	set := NewSparseSet[T](sto.cfg.PageSize, sto.cfg.InitialCapacity)
	sto.stores[info.slot] = set
	sto.logger.Debug().
		Str("component", info.name).
		Uint32("slot", uint32(info.slot)).
		Msg("registered component")
	return set, nil
}

// storeFor returns the store of T, registering it first when register is
// set.
func storeFor[T any](sto *storage, register bool) (*SparseSet[T], Slot, error) {
	if info, ok := lookupSlot[T](); ok {
		if set, ok := typedStore[T](sto, info.slot); ok {
			return set, info.slot, nil
		}
	}
	if !register {
		return nil, 0, UnregisteredComponentError{Component: typeName[T]()}
	}
	set, err := registerComponent[T](sto)
	if err != nil {
		return nil, 0, eris.Wrapf(err, "implicit registration of %q", typeName[T]())
	}
	info, _ := lookupSlot[T]()
	return set, info.slot, nil
}

// Add attaches value to the entity, overwriting any existing T. The
// returned pointer is valid until the next structural change to T's store.
func Add[T any](sto Storage, id EntityID, value T) (*T, error) {
	s := sto.internal()
	if err := s.entities.validate(id); err != nil {
		return nil, err
	}
	set, slot, err := storeFor[T](s, true)
	if err != nil {
		return nil, err
	}
	if set.Contains(id) {
		return set.Set(id, value), nil
	}
	ptr := set.Set(id, value)
	s.entities.setBit(id, slot, true)
	s.logger.Debug().
		Str("component", typeName[T]()).
		Uint64("entity_id", uint64(id)).
		Str("entity_name", s.entities.name(id)).
		Msg("attached component")
	return ptr, nil
}

func Get[T any](sto Storage, id EntityID) (*T, error) {
	s := sto.internal()
	if err := s.entities.validate(id); err != nil {
		return nil, err
	}
	set, _, err := storeFor[T](s, false)
	if err != nil {
		return nil, err
	}
	value, ok := set.Get(id)
	if !ok {
		return nil, MissingComponentError{ID: id, Name: s.entities.name(id), Component: typeName[T]()}
	}
	return value, nil
}

// Remove detaches T from the entity. Removing an absent component is a
// no-op.
func Remove[T any](sto Storage, id EntityID) error {
	s := sto.internal()
	if err := s.entities.validate(id); err != nil {
		return err
	}
	set, slot, err := storeFor[T](s, false)
	if err != nil {
		return err
	}
	if !set.Contains(id) {
		return nil
	}
	s.entities.setBit(id, slot, false)
	set.Delete(id)
	s.logger.Debug().
		Str("component", typeName[T]()).
		Uint64("entity_id", uint64(id)).
		Str("entity_name", s.entities.name(id)).
		Msg("removed component")
	return nil
}

func Has[T any](sto Storage, id EntityID) (bool, error) {
	s := sto.internal()
	if err := s.entities.validate(id); err != nil {
		return false, err
	}
	_, slot, err := storeFor[T](s, false)
	if err != nil {
		return false, err
	}
	return s.entities.has(id, slot), nil
}
