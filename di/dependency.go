package di

import "sync"

// Dependency is a lazily resolved, memoized slot for a capability T.
//
// A Dependency built with Lazy looks T up in its Source on the first Get and
// caches the result for the rest of its life. One built with Resolved starts
// out resolved and never consults any Source, which is how tests inject
// doubles without touching a Registry.
//
//	type LoginEnvironment struct {
//	    Auth    *di.Dependency[session.Authenticator]
//	    Session *di.Dependency[session.Session]
//	}
type Dependency[T any] struct {
	mu       sync.Mutex
	src      Source
	value    T
	resolved bool
}

// Lazy returns an unresolved Dependency that resolves T from src on first use.
func Lazy[T any](src Source) *Dependency[T] {
	return &Dependency[T]{src: src}
}

// Resolved returns a Dependency already holding v.
func Resolved[T any](v T) *Dependency[T] {
	return &Dependency[T]{value: v, resolved: true}
}

// Get returns the cached value, resolving it first if needed.
//
// The lookup happens at most once. Get panics with a
// *MissingRegistrationError if the Source has nothing for T; the
// Dependency then stays unresolved.
func (d *Dependency[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.resolved {
		return d.value
	}

	key := KeyOf[T]()
	if d.src == nil {
		panic(missing(key, 1))
	}
	raw, ok := d.src.Lookup(key)
	if !ok {
		err := missing(key, 1)
		if r, isRegistry := d.src.(*Registry); isRegistry {
			r.logMissing(err)
		}
		panic(err)
	}

	d.value = cast[T](key, raw)
	d.resolved = true
	return d.value
}

// IsResolved reports whether Get will return without a lookup.
func (d *Dependency[T]) IsResolved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resolved
}
