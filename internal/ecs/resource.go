package ecs

import "fmt"

// InsertResource stores r as the world's singleton of type R.
func InsertResource[R any](w *World, r R) {
	w.resources[typeOf[R]()] = &r
}

func Resource[R any](w *World) (*R, bool) {
	r, ok := w.resources[typeOf[R]()]
	if !ok {
		return nil, false
	}
	return r.(*R), true
}

func MustResource[R any](w *World) *R {
	r, ok := Resource[R](w)
	if !ok {
		panic(fmt.Sprintf("resource %s not present", typeOf[R]()))
	}
	return r
}

func RemoveResource[R any](w *World) {
	delete(w.resources, typeOf[R]())
}
