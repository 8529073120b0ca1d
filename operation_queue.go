package depot

import (
	"errors"

	"github.com/rotisserie/eris"
)

type operation struct {
	typ   operationType
	id    EntityID
	slot  Slot
	apply func(*storage) error
}

type operationType int

const (
	opNone operationType = iota - 1
	opDestroy
	opAddComponent
	opRemoveComponent
)

type opKey struct {
	id   EntityID
	slot Slot
}

// opQueue holds structural changes requested while the storage is locked.
type opQueue struct {
	componentOps   []operation
	destroyOps     []operation
	pendingDestroy map[EntityID]struct{}
	pendingMods    map[opKey]int
}

func newOpQueue() opQueue {
	return opQueue{
		pendingDestroy: make(map[EntityID]struct{}),
		pendingMods:    make(map[opKey]int),
	}
}

func (q *opQueue) empty() bool {
	return len(q.componentOps) == 0 && len(q.destroyOps) == 0
}

func (q *opQueue) reset() {
	q.componentOps = q.componentOps[:0]
	q.destroyOps = q.destroyOps[:0]
	clear(q.pendingDestroy)
	clear(q.pendingMods)
}

func (q *opQueue) EnqueueDestroy(id EntityID) {
	if _, exists := q.pendingDestroy[id]; exists {
		return
	}
	q.pendingDestroy[id] = struct{}{}

	// Component operations on a doomed entity are dropped.
	for key, idx := range q.pendingMods {
		if key.id == id {
			q.componentOps[idx].typ = opNone
			delete(q.pendingMods, key)
		}
	}

	q.destroyOps = append(q.destroyOps, operation{typ: opDestroy, id: id})
}

func (q *opQueue) pending(id EntityID, slot Slot) bool {
	_, ok := q.pendingMods[opKey{id: id, slot: slot}]
	return ok
}

func (q *opQueue) EnqueueComponentOp(op operation) {
	// If entity is pending destroy, ignore component operations
	if _, isDestroyed := q.pendingDestroy[op.id]; isDestroyed {
		return
	}

	key := opKey{id: op.id, slot: op.slot}
	// A later request for the same component replaces the earlier one.
	if existingIdx, exists := q.pendingMods[key]; exists {
		q.componentOps[existingIdx] = op
		return
	}

	q.pendingMods[key] = len(q.componentOps)
	q.componentOps = append(q.componentOps, op)
}

func (sto *storage) processOperationQueue() error {
	if sto.opQueue.empty() {
		return nil
	}
	defer sto.opQueue.reset()

	// Process component modifications
	for _, op := range sto.opQueue.componentOps {
		if op.typ == opNone {
			continue
		}
		// The entity may have been deleted directly since the op was queued.
		if !sto.entities.alive(op.id) {
			continue
		}
		if err := op.apply(sto); err != nil {
			return eris.Wrapf(err, "failed to process queued component operation on entity %d", op.id)
		}
	}

	// Process destroys last
	for _, op := range sto.opQueue.destroyOps {
		if !sto.entities.alive(op.id) {
			continue
		}
		sto.deleteEntity(op.id)
	}
	return nil
}

// EnqueueDeleteEntity deletes the entity now, or once the storage unlocks if
// it is locked.
func (sto *storage) EnqueueDeleteEntity(id EntityID) error {
	if !sto.Locked() {
		return sto.DeleteEntity(&id)
	}
	if err := sto.entities.validate(id); err != nil {
		return err
	}
	sto.opQueue.EnqueueDestroy(id)
	return nil
}

// EnqueueAdd behaves like Add, deferred while the storage is locked.
func EnqueueAdd[T any](sto Storage, id EntityID, value T) error {
	s := sto.internal()
	if !s.Locked() {
		_, err := Add(sto, id, value)
		return err
	}
	if err := s.entities.validate(id); err != nil {
		return err
	}
	info, err := slotFor[T]()
	if err != nil {
		return err
	}
	s.opQueue.EnqueueComponentOp(operation{
		typ:  opAddComponent,
		id:   id,
		slot: info.slot,
		apply: func(s *storage) error {
			_, err := Add(s, id, value)
			return err
		},
	})
	return nil
}

// EnqueueRemove behaves like Remove, deferred while the storage is locked.
func EnqueueRemove[T any](sto Storage, id EntityID) error {
	s := sto.internal()
	if !s.Locked() {
		return Remove[T](sto, id)
	}
	if err := s.entities.validate(id); err != nil {
		return err
	}
	info, err := slotFor[T]()
	if err != nil {
		return err
	}
	// T may only become registered once a queued add for it lands.
	if _, registered := s.store(info.slot); !registered && !s.opQueue.pending(id, info.slot) {
		return UnregisteredComponentError{Component: info.name}
	}
	s.opQueue.EnqueueComponentOp(operation{
		typ:  opRemoveComponent,
		id:   id,
		slot: info.slot,
		apply: func(s *storage) error {
			err := Remove[T](s, id)
			var unregistered UnregisteredComponentError
			if errors.As(err, &unregistered) {
				// The add this replaced never ran, so there is nothing to remove.
				return nil
			}
			return err
		},
	})
	return nil
}
