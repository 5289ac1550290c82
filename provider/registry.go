package provider

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

type entry[T Provider] struct {
	factory  Factory[T]
	instance T
	cached   bool
}

// Registry maps backend names to factories and, once created, to the cached
// instance. It is safe for concurrent use.
type Registry[T Provider] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
}

// NewRegistry creates an empty Registry.
func NewRegistry[T Provider]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]*entry[T])}
}

func (r *Registry[T]) lookup(name string) *entry[T] {
	e, ok := r.entries[name]
	if !ok {
		e = &entry[T]{}
		r.entries[name] = e
	}
	return e
}

// RegisterFactory registers factory under name. A later registration
// replaces the factory but keeps a cached instance.
func (r *Registry[T]) RegisterFactory(name string, factory Factory[T]) {
	r.mu.Lock()
	r.lookup(name).factory = factory
	r.mu.Unlock()
}

// Create runs the named factory. The result is not cached; see Set.
func (r *Registry[T]) Create(name string, cfg map[string]any) (T, error) {
	r.mu.RLock()
	var factory Factory[T]
	if e, ok := r.entries[name]; ok {
		factory = e.factory
	}
	r.mu.RUnlock()

	if factory == nil {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return factory(cfg)
}

// Get returns the instance cached under name.
func (r *Registry[T]) Get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[name]; ok && e.cached {
		return e.instance, true
	}
	var zero T
	return zero, false
}

// Set caches instance under name.
func (r *Registry[T]) Set(name string, instance T) {
	r.mu.Lock()
	e := r.lookup(name)
	e.instance, e.cached = instance, true
	r.mu.Unlock()
}

// List returns the names that have a factory, sorted.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for _, name := range slices.Sorted(maps.Keys(r.entries)) {
		if r.entries[name].factory != nil {
			names = append(names, name)
		}
	}
	return names
}
