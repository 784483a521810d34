package di

import "fmt"

// Resolve returns the instance registered for the capability T.
//
// It panics with a *MissingRegistrationError when nothing is registered for
// T. A missing registration is a wiring bug in the composition root and is
// meant to surface immediately, never as a zero value.
//
// Example:
//
//	sess := di.Resolve[session.Session](reg)
func Resolve[T any](r *Registry) T {
	key := KeyOf[T]()
	raw, ok := r.Lookup(key)
	if !ok {
		err := missing(key, 1)
		r.logMissing(err)
		panic(err)
	}
	return cast[T](key, raw)
}

func (r *Registry) logMissing(err *MissingRegistrationError) {
	r.log.Error("Missing dependency registration", map[string]interface{}{
		"key":    err.Key.String(),
		"caller": fmt.Sprintf("%s:%d", err.File, err.Line),
	})
}

// TryResolve returns the instance registered for T and whether one exists.
// Use it only for dependencies that are genuinely optional.
//
// Example:
//
//	if m, ok := di.TryResolve[*observability.Metrics](reg); ok {
//	    m.Record(...)
//	}
func TryResolve[T any](r *Registry) (T, bool) {
	raw, ok := r.Lookup(KeyOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	v, ok := raw.(T)
	return v, ok
}

// cast converts a looked-up value to T. Register[T] guarantees the dynamic
// type, so a failure means a Source broke that guarantee.
func cast[T any](key Key, raw any) T {
	if raw == nil {
		// A nil interface registered for T.
		var zero T
		return zero
	}
	v, ok := raw.(T)
	if !ok {
		panic(&WrongTypeError{Key: key, Got: fmt.Sprintf("%T", raw)})
	}
	return v
}
