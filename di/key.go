package di

import (
	"reflect"
	"sort"
)

// Key identifies a capability in the Registry.
//
// A Key is derived from the type a consumer asks for, not from the concrete
// type of the value that satisfies it. Registering a production service and a
// test double under the same interface therefore yields the same Key.
type Key struct {
	t reflect.Type
}

// KeyOf returns the Key for the declared type T.
//
// For interface types this is the interface itself, so
// KeyOf[session.Session]() is the same no matter which implementation
// is later registered.
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeFor[T]()}
}

// String returns the package-qualified type name, e.g. "session.Session".
func (k Key) String() string {
	if k.t == nil {
		return "<nil>"
	}
	return k.t.String()
}

// Name returns the bare type name, e.g. "Session".
// Unnamed types (slices, funcs, ...) fall back to String.
func (k Key) Name() string {
	if k.t == nil {
		return "<nil>"
	}
	if n := k.t.Name(); n != "" {
		return n
	}
	return k.t.String()
}

// Type returns the underlying reflect.Type.
func (k Key) Type() reflect.Type {
	return k.t
}

// IsZero reports whether k was not derived from a type.
func (k Key) IsZero() bool {
	return k.t == nil
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
}
