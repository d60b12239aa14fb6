package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope of one piece of content.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	}

	if !identifierPattern.MatchString(a.Identifier) {
		el.Add(fmt.Errorf("id must be alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// Ref names another asset by id. It serializes as the bare id.
type Ref[T ValidatingSpec] struct {
	key string
}

func NewRef[T ValidatingSpec](key string) Ref[T] {
	return Ref[T]{key: key}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.key)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.key)
}

// IsSet reports whether the reference names anything.
func (r Ref[T]) IsSet() bool {
	return r.key != ""
}

func (r Ref[T]) Validate() error {
	if r.key == "" {
		return fmt.Errorf("%s identifier is required", kindName[T]())
	}
	return nil
}

// Resolve looks the referenced asset up in st.
func (r Ref[T]) Resolve(st Storer[T]) (T, error) {
	val, ok := st.Get(r.key)
	if !ok {
		return val, fmt.Errorf("%s %q not found", kindName[T](), r.key)
	}
	return val, nil
}

func (r Ref[T]) Id() string {
	return r.key
}

func kindName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
