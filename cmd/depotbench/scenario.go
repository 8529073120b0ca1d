package main

import (
	"time"

	"github.com/TheBitDrifter/depot"
)

type Dummy[T any] struct {
	Data T
}

type result struct {
	Name    string
	Elapsed time.Duration
}

type timer struct {
	start   time.Time
	results []result
}

func (t *timer) reset() {
	t.start = time.Now()
}

func (t *timer) record(name string) {
	t.results = append(t.results, result{Name: name, Elapsed: time.Since(t.start)})
}

// runBenchmarks times each scenario against a fresh storage built from cfg.
func runBenchmarks(cfg depot.Config, n int) ([]result, error) {
	sto := depot.Factory.NewStorage(depot.WithConfig(cfg))
	ids := make([]depot.EntityID, n)
	var t timer

	t.reset()
	for i := range ids {
		id, err := sto.CreateEntity()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	t.record("creation")

	t.reset()
	for _, id := range ids {
		if _, err := depot.Add(sto, id, Dummy[int]{}); err != nil {
			return nil, err
		}
	}
	t.record("add component")

	t.reset()
	for _, id := range ids {
		if _, err := depot.Get[Dummy[int]](sto, id); err != nil {
			return nil, err
		}
	}
	t.record("get component")

	t.reset()
	for _, id := range ids {
		if err := depot.Remove[Dummy[int]](sto, id); err != nil {
			return nil, err
		}
	}
	t.record("remove component")

	t.reset()
	for i := range ids {
		if err := sto.DeleteEntity(&ids[i]); err != nil {
			return nil, err
		}
	}
	t.record("delete entity")

	if err := populate(sto, ids, 2); err != nil {
		return nil, err
	}
	view2, err := depot.NewView2[Dummy[int], Dummy[float64]](sto)
	if err != nil {
		return nil, err
	}
	t.reset()
	view2.Each(func(_ *Dummy[int], _ *Dummy[float64]) {})
	t.record("foreach (2 components)")

	t.reset()
	for _, id := range ids {
		if _, err := depot.Get[Dummy[int]](sto, id); err != nil {
			return nil, err
		}
		if _, err := depot.Get[Dummy[float64]](sto, id); err != nil {
			return nil, err
		}
	}
	t.record("get (2 components)")

	if err := populate(sto, ids, 4); err != nil {
		return nil, err
	}
	view4, err := depot.NewView4[Dummy[int], Dummy[float64], Dummy[int64], Dummy[float32]](sto)
	if err != nil {
		return nil, err
	}
	t.reset()
	view4.Each(func(_ *Dummy[int], _ *Dummy[float64], _ *Dummy[int64], _ *Dummy[float32]) {})
	t.record("foreach (4 components)")

	t.reset()
	for _, id := range ids {
		if _, err := depot.Get[Dummy[int]](sto, id); err != nil {
			return nil, err
		}
		if _, err := depot.Get[Dummy[float64]](sto, id); err != nil {
			return nil, err
		}
		if _, err := depot.Get[Dummy[int64]](sto, id); err != nil {
			return nil, err
		}
		if _, err := depot.Get[Dummy[float32]](sto, id); err != nil {
			return nil, err
		}
	}
	t.record("get (4 components)")

	return t.results, nil
}

// populate resets the storage and fills ids with fresh entities carrying the
// first width Dummy components.
func populate(sto depot.Storage, ids []depot.EntityID, width int) error {
	if err := sto.Reset(); err != nil {
		return err
	}
	for i := range ids {
		id, err := sto.CreateEntity()
		if err != nil {
			return err
		}
		ids[i] = id
		if _, err := depot.Add(sto, id, Dummy[int]{}); err != nil {
			return err
		}
		if _, err := depot.Add(sto, id, Dummy[float64]{}); err != nil {
			return err
		}
		if width < 4 {
			continue
		}
		if _, err := depot.Add(sto, id, Dummy[int64]{}); err != nil {
			return err
		}
		if _, err := depot.Add(sto, id, Dummy[float32]{}); err != nil {
			return err
		}
	}
	return nil
}
