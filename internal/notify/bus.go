package notify

import (
	"log/slog"
	"reflect"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// None is the contents of notifications that carry no payload.
type None struct{}

// Notification pairs a kind (what happened) with its contents (what it happened to).
type Notification[N, C any] struct {
	Kind     N
	Contents C
}

type key struct {
	kind     reflect.Type
	contents reflect.Type
}

type handler func(kind, contents any, w *ecs.World)
type verifier func(kind, contents any, w *ecs.World) error

// Bus routes notifications to handlers keyed by (kind type, contents type).
// Handlers for a key run in registration order.
type Bus struct {
	handlers  map[key][]handler
	verifiers map[key][]verifier
	wildcards map[reflect.Type][]handler
	active    map[key]bool
}

func NewBus() Bus {
	return Bus{
		handlers:  map[key][]handler{},
		verifiers: map[key][]verifier{},
		wildcards: map[reflect.Type][]handler{},
		active:    map[key]bool{},
	}
}

// Install inserts an empty bus into the world if one is not already present.
func Install(w *ecs.World) *Bus {
	if b, ok := ecs.Resource[Bus](w); ok {
		return b
	}
	ecs.InsertResource(w, NewBus())
	return ecs.MustResource[Bus](w)
}

// From returns the world's bus, installing one if needed.
func From(w *ecs.World) *Bus {
	return Install(w)
}

func keyFor[N, C any]() key {
	return key{kind: reflect.TypeFor[N](), contents: reflect.TypeFor[C]()}
}

// Handle registers h for notifications of kind N about contents C.
func Handle[N, C any](b *Bus, h func(Notification[N, C], *ecs.World)) {
	k := keyFor[N, C]()
	b.handlers[k] = append(b.handlers[k], func(kind, contents any, w *ecs.World) {
		h(Notification[N, C]{Kind: kind.(N), Contents: contents.(C)}, w)
	})
}

// HandleVerify registers a verifier. A non-nil error from any verifier vetoes.
func HandleVerify[N, C any](b *Bus, h func(Notification[N, C], *ecs.World) error) {
	k := keyFor[N, C]()
	b.verifiers[k] = append(b.verifiers[k], func(kind, contents any, w *ecs.World) error {
		return h(Notification[N, C]{Kind: kind.(N), Contents: contents.(C)}, w)
	})
}

// HandleAny registers h for every notification of kind N regardless of contents.
// Wildcard handlers run after the typed handlers for the same send.
func HandleAny[N any](b *Bus, h func(kind N, contents any, w *ecs.World)) {
	t := reflect.TypeFor[N]()
	b.wildcards[t] = append(b.wildcards[t], func(kind, contents any, w *ecs.World) {
		h(kind.(N), contents, w)
	})
}

func dynamicKey(kind, contents any) key {
	return key{kind: reflect.TypeOf(kind), contents: reflect.TypeOf(contents)}
}

// Send dispatches a notification using the dynamic types of kind and contents.
// A send for a key that is already being dispatched is dropped.
func (b *Bus) Send(w *ecs.World, kind, contents any) {
	k := dynamicKey(kind, contents)
	if b.active[k] {
		slog.Warn("dropping recursive notification", "kind", k.kind, "contents", k.contents)
		return
	}
	b.active[k] = true
	defer delete(b.active, k)

	for _, h := range b.handlers[k] {
		h(kind, contents, w)
	}
	for _, h := range b.wildcards[k.kind] {
		h(kind, contents, w)
	}
}

// Verify runs every verifier for the key and returns the first veto.
func (b *Bus) Verify(w *ecs.World, kind, contents any) error {
	k := dynamicKey(kind, contents)
	if b.active[k] {
		slog.Warn("dropping recursive verification", "kind", k.kind, "contents", k.contents)
		return nil
	}
	b.active[k] = true
	defer delete(b.active, k)

	for _, v := range b.verifiers[k] {
		if err := v(kind, contents, w); err != nil {
			return err
		}
	}
	return nil
}

// Send is a typed convenience over Bus.Send.
func Send[N, C any](w *ecs.World, n Notification[N, C]) {
	From(w).Send(w, n.Kind, n.Contents)
}
