package ecs

import (
	"fmt"
	"reflect"
	"slices"
)

// Entity is an opaque handle into a World. The zero value never refers to a live entity.
type Entity uint64

func (e Entity) String() string {
	return fmt.Sprintf("entity-%d", uint64(e))
}

type store interface {
	remove(Entity)
	has(Entity) bool
}

// World owns every entity, component and resource of a simulation.
// It is not safe for concurrent use; a single goroutine drives it.
type World struct {
	next      Entity
	alive     map[Entity]struct{}
	stores    map[reflect.Type]store
	resources map[reflect.Type]any

	despawns []Entity
	ticks    uint64
}

func NewWorld() *World {
	return &World{
		alive:     map[Entity]struct{}{},
		stores:    map[reflect.Type]store{},
		resources: map[reflect.Type]any{},
	}
}

// Spawn creates a new entity with no components.
func (w *World) Spawn() Entity {
	w.next++
	w.alive[w.next] = struct{}{}
	return w.next
}

// Despawn flags e for removal. The entity stays queryable until ApplyDespawns runs.
func (w *World) Despawn(e Entity) {
	if !w.Alive(e) || slices.Contains(w.despawns, e) {
		return
	}
	w.despawns = append(w.despawns, e)
}

// PendingDespawn reports whether e is flagged for removal.
func (w *World) PendingDespawn(e Entity) bool {
	return slices.Contains(w.despawns, e)
}

// ApplyDespawns removes every flagged entity along with all of its components
// and returns the removed handles in the order they were flagged.
func (w *World) ApplyDespawns() []Entity {
	removed := w.despawns
	w.despawns = nil
	for _, e := range removed {
		for _, s := range w.stores {
			s.remove(e)
		}
		delete(w.alive, e)
	}
	return removed
}

func (w *World) Alive(e Entity) bool {
	_, ok := w.alive[e]
	return ok
}

// Entities returns every live entity in ascending handle order.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func (w *World) TickCount() uint64 {
	return w.ticks
}

func (w *World) AdvanceTick() {
	w.ticks++
}
