package depot

import (
	"iter"

	iter_util "github.com/TheBitDrifter/util/iter"
)

// view is the untyped core shared by View1..View4. It borrows the storage's
// stores and must not outlive a change to component registration.
type view struct {
	sto   *storage
	pools []Store
	// driver is the smallest pool at construction; iteration scans it and
	// probes the others.
	driver Store
}

func newView(sto *storage, slots ...Slot) (view, error) {
	if len(slots) == 0 {
		return view{}, EmptyViewError{}
	}
	pools := make([]Store, len(slots))
	for i, slot := range slots {
		store, ok := sto.store(slot)
		if !ok {
			return view{}, UnregisteredComponentError{Component: infoAt(slot).name}
		}
		pools[i] = store
	}
	driver := pools[0]
	for _, pool := range pools[1:] {
		if pool.Size() < driver.Size() {
			driver = pool
		}
	}
	return view{sto: sto, pools: pools, driver: driver}, nil
}

func (v view) allContain(id EntityID) bool {
	for _, pool := range v.pools {
		if !pool.Contains(id) {
			return false
		}
	}
	return true
}

// Entities yields matching ids from a snapshot of the driver taken when
// iteration starts. Membership is re-checked as each id is reached, so
// entities removed mid-iteration are skipped.
func (v view) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for _, id := range v.driver.IDs() {
			if !v.allContain(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// IDs returns the ids of all entities currently matching the view.
func (v view) IDs() []EntityID {
	return iter_util.Collect(v.Entities())
}

// each runs fn for every match with the storage locked, so queued
// operations land once the outermost iteration finishes.
func (v view) each(fn func(id EntityID)) {
	v.sto.Lock()
	defer v.sto.Unlock()
	for id := range v.Entities() {
		fn(id)
	}
}

// resolve looks the value up again rather than trusting a pointer taken
// before the previous callback ran.
func resolve[T any](set *SparseSet[T], id EntityID) *T {
	value, _ := set.Get(id)
	return value
}

type View1[A any] struct {
	view
	a *SparseSet[A]
}

type Row1[A any] struct {
	ID EntityID
	A  *A
}

func NewView1[A any](sto Storage) (*View1[A], error) {
	s := sto.internal()
	a, sa, err := storeFor[A](s, false)
	if err != nil {
		return nil, err
	}
	v, err := newView(s, sa)
	if err != nil {
		return nil, err
	}
	return &View1[A]{view: v, a: a}, nil
}

func (v *View1[A]) Each(fn func(a *A)) {
	v.each(func(id EntityID) {
		fn(resolve(v.a, id))
	})
}

func (v *View1[A]) EachWithID(fn func(id EntityID, a *A)) {
	v.each(func(id EntityID) {
		fn(id, resolve(v.a, id))
	})
}

// Packed materializes every match. The pointers follow the same validity
// rule as Get.
func (v *View1[A]) Packed() []Row1[A] {
	var rows []Row1[A]
	for id := range v.Entities() {
		rows = append(rows, Row1[A]{ID: id, A: resolve(v.a, id)})
	}
	return rows
}

type View2[A, B any] struct {
	view
	a *SparseSet[A]
	b *SparseSet[B]
}

type Row2[A, B any] struct {
	ID EntityID
	A  *A
	B  *B
}

func NewView2[A, B any](sto Storage) (*View2[A, B], error) {
	s := sto.internal()
	a, sa, err := storeFor[A](s, false)
	if err != nil {
		return nil, err
	}
	b, sb, err := storeFor[B](s, false)
	if err != nil {
		return nil, err
	}
	v, err := newView(s, sa, sb)
	if err != nil {
		return nil, err
	}
	return &View2[A, B]{view: v, a: a, b: b}, nil
}

func (v *View2[A, B]) Each(fn func(a *A, b *B)) {
	v.each(func(id EntityID) {
		fn(resolve(v.a, id), resolve(v.b, id))
	})
}

func (v *View2[A, B]) EachWithID(fn func(id EntityID, a *A, b *B)) {
	v.each(func(id EntityID) {
		fn(id, resolve(v.a, id), resolve(v.b, id))
	})
}

func (v *View2[A, B]) Packed() []Row2[A, B] {
	var rows []Row2[A, B]
	for id := range v.Entities() {
		rows = append(rows, Row2[A, B]{ID: id, A: resolve(v.a, id), B: resolve(v.b, id)})
	}
	return rows
}

type View3[A, B, C any] struct {
	view
	a *SparseSet[A]
	b *SparseSet[B]
	c *SparseSet[C]
}

type Row3[A, B, C any] struct {
	ID EntityID
	A  *A
	B  *B
	C  *C
}

func NewView3[A, B, C any](sto Storage) (*View3[A, B, C], error) {
	s := sto.internal()
	a, sa, err := storeFor[A](s, false)
	if err != nil {
		return nil, err
	}
	b, sb, err := storeFor[B](s, false)
	if err != nil {
		return nil, err
	}
	c, sc, err := storeFor[C](s, false)
	if err != nil {
		return nil, err
	}
	v, err := newView(s, sa, sb, sc)
	if err != nil {
		return nil, err
	}
	return &View3[A, B, C]{view: v, a: a, b: b, c: c}, nil
}

func (v *View3[A, B, C]) Each(fn func(a *A, b *B, c *C)) {
	v.each(func(id EntityID) {
		fn(resolve(v.a, id), resolve(v.b, id), resolve(v.c, id))
	})
}

func (v *View3[A, B, C]) EachWithID(fn func(id EntityID, a *A, b *B, c *C)) {
	v.each(func(id EntityID) {
		fn(id, resolve(v.a, id), resolve(v.b, id), resolve(v.c, id))
	})
}

func (v *View3[A, B, C]) Packed() []Row3[A, B, C] {
	var rows []Row3[A, B, C]
	for id := range v.Entities() {
		rows = append(rows, Row3[A, B, C]{
			ID: id,
			A:  resolve(v.a, id),
			B:  resolve(v.b, id),
			C:  resolve(v.c, id),
		})
	}
	return rows
}

type View4[A, B, C, D any] struct {
	view
	a *SparseSet[A]
	b *SparseSet[B]
	c *SparseSet[C]
	d *SparseSet[D]
}

type Row4[A, B, C, D any] struct {
	ID EntityID
	A  *A
	B  *B
	C  *C
	D  *D
}

func NewView4[A, B, C, D any](sto Storage) (*View4[A, B, C, D], error) {
	s := sto.internal()
	a, sa, err := storeFor[A](s, false)
	if err != nil {
		return nil, err
	}
	b, sb, err := storeFor[B](s, false)
	if err != nil {
		return nil, err
	}
	c, sc, err := storeFor[C](s, false)
	if err != nil {
		return nil, err
	}
	d, sd, err := storeFor[D](s, false)
	if err != nil {
		return nil, err
	}
	v, err := newView(s, sa, sb, sc, sd)
	if err != nil {
		return nil, err
	}
	return &View4[A, B, C, D]{view: v, a: a, b: b, c: c, d: d}, nil
}

func (v *View4[A, B, C, D]) Each(fn func(a *A, b *B, c *C, d *D)) {
	v.each(func(id EntityID) {
		fn(resolve(v.a, id), resolve(v.b, id), resolve(v.c, id), resolve(v.d, id))
	})
}

func (v *View4[A, B, C, D]) EachWithID(fn func(id EntityID, a *A, b *B, c *C, d *D)) {
	v.each(func(id EntityID) {
		fn(id, resolve(v.a, id), resolve(v.b, id), resolve(v.c, id), resolve(v.d, id))
	})
}

func (v *View4[A, B, C, D]) Packed() []Row4[A, B, C, D] {
	var rows []Row4[A, B, C, D]
	for id := range v.Entities() {
		rows = append(rows, Row4[A, B, C, D]{
			ID: id,
			A:  resolve(v.a, id),
			B:  resolve(v.b, id),
			C:  resolve(v.c, id),
			D:  resolve(v.d, id),
		})
	}
	return rows
}
