package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
)

type componentStore[C any] struct {
	items map[Entity]*C
}

func (s *componentStore[C]) remove(e Entity) {
	delete(s.items, e)
}

func (s *componentStore[C]) has(e Entity) bool {
	_, ok := s.items[e]
	return ok
}

func (s *componentStore[C]) sorted() []Entity {
	out := make([]Entity, 0, len(s.items))
	for e := range s.items {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func storeFor[C any](w *World, create bool) *componentStore[C] {
	t := typeOf[C]()
	s, ok := w.stores[t]
	if !ok {
		if !create {
			return nil
		}
		cs := &componentStore[C]{items: map[Entity]*C{}}
		w.stores[t] = cs
		return cs
	}
	return s.(*componentStore[C])
}

// Attach sets the C component of e, replacing any existing one.
// Attaching to an entity that is not alive is a programming error and panics.
func Attach[C any](w *World, e Entity, c C) {
	if !w.Alive(e) {
		panic(fmt.Sprintf("attaching %s to dead %s", typeOf[C](), e))
	}
	storeFor[C](w, true).items[e] = &c
}

// Detach removes the C component from e and reports whether one was present.
func Detach[C any](w *World, e Entity) bool {
	s := storeFor[C](w, false)
	if s == nil || !s.has(e) {
		return false
	}
	s.remove(e)
	return true
}

// Get returns a pointer to the C component of e. Writes through the pointer
// update the world directly.
func Get[C any](w *World, e Entity) (*C, bool) {
	s := storeFor[C](w, false)
	if s == nil {
		return nil, false
	}
	c, ok := s.items[e]
	return c, ok
}

// MustGet is Get for relations that must hold. A missing component panics.
func MustGet[C any](w *World, e Entity) *C {
	c, ok := Get[C](w, e)
	if !ok {
		panic(fmt.Sprintf("%s has no %s component", e, typeOf[C]()))
	}
	return c
}

func Has[C any](w *World, e Entity) bool {
	s := storeFor[C](w, false)
	return s != nil && s.has(e)
}

// Query iterates every entity carrying C in ascending handle order. Entities
// whose component is detached mid-iteration are skipped.
func Query[C any](w *World) iter.Seq2[Entity, *C] {
	return func(yield func(Entity, *C) bool) {
		s := storeFor[C](w, false)
		if s == nil {
			return
		}
		for _, e := range s.sorted() {
			c, ok := s.items[e]
			if !ok {
				continue
			}
			if !yield(e, c) {
				return
			}
		}
	}
}

// With pairs an entity's A and B components.
type With[A, B any] struct {
	A *A
	B *B
}

// Query2 iterates every entity carrying both A and B in ascending handle order.
func Query2[A, B any](w *World) iter.Seq2[Entity, With[A, B]] {
	return func(yield func(Entity, With[A, B]) bool) {
		for e, a := range Query[A](w) {
			b, ok := Get[B](w, e)
			if !ok {
				continue
			}
			if !yield(e, With[A, B]{A: a, B: b}) {
				return
			}
		}
	}
}

// Collect returns the entities carrying C in ascending order.
func Collect[C any](w *World) []Entity {
	var out []Entity
	for e := range Query[C](w) {
		out = append(out, e)
	}
	return out
}
