package ecs

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

type position struct{ X, Y int }
type label struct{ Name string }

func TestWorld_SpawnAssignsAscendingHandles(t *testing.T) {
	w := NewWorld()
	a := w.Spawn()
	b := w.Spawn()

	testutil.AssertEqual(t, "first", a, Entity(1))
	testutil.AssertEqual(t, "second", b, Entity(2))
	testutil.AssertEqual(t, "alive", w.Alive(a), true)
	testutil.AssertEqual(t, "zero alive", w.Alive(0), false)
}

func TestWorld_DespawnIsDeferred(t *testing.T) {
	w := NewWorld()
	e := w.Spawn()
	Attach(w, e, label{Name: "rock"})

	w.Despawn(e)
	w.Despawn(e)
	testutil.AssertEqual(t, "alive before apply", w.Alive(e), true)
	testutil.AssertEqual(t, "pending", w.PendingDespawn(e), true)
	testutil.AssertEqual(t, "still has label", Has[label](w, e), true)

	removed := w.ApplyDespawns()
	testutil.AssertEqual(t, "removed count", len(removed), 1)
	testutil.AssertEqual(t, "alive after apply", w.Alive(e), false)
	testutil.AssertEqual(t, "label after apply", Has[label](w, e), false)
}

func TestComponents(t *testing.T) {
	tests := map[string]struct {
		setup  func(w *World, e Entity)
		expHas bool
		expX   int
	}{
		"attach": {
			setup:  func(w *World, e Entity) { Attach(w, e, position{X: 3}) },
			expHas: true,
			expX:   3,
		},
		"attach replaces": {
			setup: func(w *World, e Entity) {
				Attach(w, e, position{X: 3})
				Attach(w, e, position{X: 7})
			},
			expHas: true,
			expX:   7,
		},
		"detach": {
			setup: func(w *World, e Entity) {
				Attach(w, e, position{X: 3})
				Detach[position](w, e)
			},
		},
		"mutate through pointer": {
			setup: func(w *World, e Entity) {
				Attach(w, e, position{X: 1})
				p, _ := Get[position](w, e)
				p.X = 9
			},
			expHas: true,
			expX:   9,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := NewWorld()
			e := w.Spawn()
			tt.setup(w, e)

			p, ok := Get[position](w, e)
			testutil.AssertEqual(t, "has", ok, tt.expHas)
			if ok {
				testutil.AssertEqual(t, "x", p.X, tt.expX)
			}
		})
	}
}

func TestAttach_DeadEntityPanics(t *testing.T) {
	w := NewWorld()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Attach(w, Entity(42), label{})
}

func TestQuery_AscendingOrder(t *testing.T) {
	w := NewWorld()
	var spawned []Entity
	for range 5 {
		spawned = append(spawned, w.Spawn())
	}
	// attach out of order
	for _, i := range []int{3, 0, 4, 1} {
		Attach(w, spawned[i], position{X: i})
	}
	Attach(w, spawned[4], label{Name: "four"})
	Attach(w, spawned[0], label{Name: "zero"})

	var got []Entity
	for e := range Query[position](w) {
		got = append(got, e)
	}
	testutil.AssertEqual(t, "count", len(got), 4)
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("query order not ascending: %v", got)
		}
	}

	var names []string
	for _, pair := range Query2[position, label](w) {
		names = append(names, pair.B.Name)
	}
	testutil.AssertEqual(t, "pair count", len(names), 2)
	testutil.AssertEqual(t, "first pair", names[0], "zero")
	testutil.AssertEqual(t, "second pair", names[1], "four")
}

func TestQuery_SkipsDetachedDuringIteration(t *testing.T) {
	w := NewWorld()
	a, b := w.Spawn(), w.Spawn()
	Attach(w, a, position{})
	Attach(w, b, position{})

	count := 0
	for range Query[position](w) {
		count++
		Detach[position](w, b)
	}
	testutil.AssertEqual(t, "visited", count, 1)
}

func TestResources(t *testing.T) {
	w := NewWorld()
	_, ok := Resource[label](w)
	testutil.AssertEqual(t, "missing", ok, false)

	InsertResource(w, label{Name: "catalog"})
	r := MustResource[label](w)
	r.Name = "changed"
	testutil.AssertEqual(t, "mutated", MustResource[label](w).Name, "changed")

	RemoveResource[label](w)
	_, ok = Resource[label](w)
	testutil.AssertEqual(t, "removed", ok, false)
}
