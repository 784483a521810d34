package di

import (
	"errors"
	"fmt"
	"runtime"
)

// MissingRegistrationError is the panic value raised when a capability is
// resolved before anything was registered for it.
//
// A missing registration is a wiring defect, not a runtime condition, so it is
// never returned as an error. File and Line point at the call that asked for
// the dependency.
type MissingRegistrationError struct {
	Key  Key
	File string
	Line int
}

// Error implements the error interface.
func (e *MissingRegistrationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("di: there is no instance registered for `%s`", e.Key)
	}
	return fmt.Sprintf("di: there is no instance registered for `%s` (%s:%d)", e.Key, e.File, e.Line)
}

// WrongTypeError is the panic value raised when the value bound under a key
// does not satisfy the key's type. Only a hand-written Source can produce it.
type WrongTypeError struct {
	Key Key
	Got string
}

// Error implements the error interface.
func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("di: instance registered for `%s` has type %s", e.Key, e.Got)
}

// IsMissingRegistration reports whether a recovered panic value (or an error
// wrapping one) is a *MissingRegistrationError.
func IsMissingRegistration(recovered any) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	var target *MissingRegistrationError
	return errors.As(err, &target)
}

// missing builds a MissingRegistrationError for the caller skip frames above
// the function that calls missing.
func missing(key Key, skip int) *MissingRegistrationError {
	e := &MissingRegistrationError{Key: key}
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		e.File = file
		e.Line = line
	}
	return e
}
