/*
Package depot provides an Entity-Component-System (ECS) storage and query engine.

Depot keeps every component type in its own sparse set: a packed dense slice of values
plus a paged sparse table translating entity ids to dense indices. Inserts, lookups and
removals are O(1); removal swaps the last element into the hole so the dense slice never
has gaps.

Core Concepts:

  - Entity: An id grouping zero or more components. Deleted ids are recycled LIFO.
  - Component: Any Go type. Each type gets a process-wide slot the first time it is used.
  - Mask: A per-entity bit set recording which slots hold a value for that entity.
  - View: A typed query over one to four component types, driven by the smallest store.

Basic Usage:

	storage := depot.Factory.NewStorage()

	player, _ := storage.CreateNamedEntity("player")
	depot.Add(storage, player, Position{X: 1})
	depot.Add(storage, player, Velocity{X: 2})

	view, _ := depot.NewView2[Position, Velocity](storage)
	view.EachWithID(func(id depot.EntityID, pos *Position, vel *Velocity) {
		pos.X += vel.X
	})

Iteration works on a snapshot of the driving store's ids and looks each entity up again
before its callback, so callbacks may add, remove or delete freely. Pointers handed to a
callback, or returned by Add and Get, are only valid until the next structural change to
that component's store.

Errors for misuse (null or dead entities, unregistered or missing components, exceeded
ceilings) are returned as typed values such as DeadEntityError and MissingComponentError.
*/
package depot
