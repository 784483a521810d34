package di

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/kbukum/simplemovies/logger"
)

// Source is anything a Dependency can resolve from.
// *Registry is the production implementation.
type Source interface {
	Lookup(key Key) (any, bool)
}

// Registry binds capability keys to instances.
//
// It is created once at process entry (or once per test) and passed down
// explicitly; there is no package-level instance. A Registry is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	instances map[Key]any
	log       *logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		instances: make(map[Key]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.GetGlobalLogger().WithComponent("di")
	}
	return r
}

// Register binds instance to the capability T, replacing any previous binding.
//
//	di.Register[session.Session](reg, session.NewManager(...))
func Register[T any](r *Registry, instance T) {
	r.bind(KeyOf[T](), instance)
}

func (r *Registry) bind(key Key, instance any) {
	r.mu.Lock()
	_, replaced := r.instances[key]
	r.instances[key] = instance
	r.mu.Unlock()

	r.log.Debug("Dependency registered", map[string]interface{}{
		"key":      key.String(),
		"type":     fmt.Sprintf("%T", instance),
		"replaced": replaced,
	})
}

// Lookup returns the raw instance bound to key.
func (r *Registry) Lookup(key Key) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.instances[key]
	return v, ok
}

// Has reports whether key is bound.
func (r *Registry) Has(key Key) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Len returns the number of bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

// Keys returns every bound key ordered by name.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	keys := make([]Key, 0, len(r.instances))
	for k := range r.instances {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sortKeys(keys)
	return keys
}

// Close drops every binding and closes each instance that implements
// io.Closer. A pointer registered under several keys is closed once; any other
// closer is closed once per binding. Close errors are joined.
func (r *Registry) Close() error {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[Key]any)
	r.mu.Unlock()

	var errs []error
	closed := make(map[io.Closer]bool)
	for _, key := range sortedKeys(instances) {
		closer, ok := instances[key].(io.Closer)
		if !ok {
			continue
		}
		if reflect.ValueOf(closer).Kind() == reflect.Pointer {
			if closed[closer] {
				continue
			}
			closed[closer] = true
		}
		if err := closer.Close(); err != nil {
			r.log.Warn("Failed to close dependency", map[string]interface{}{
				"key":   key.String(),
				"error": err.Error(),
			})
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func sortedKeys(m map[Key]any) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}
