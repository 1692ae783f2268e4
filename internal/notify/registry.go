// Package notify provides a small listener registry shared by the theme
// signal sources and the mode store.
package notify

import (
	"sort"
	"sync"
)

// Registry holds callbacks keyed by registration order.
// The zero value is ready to use.
type Registry[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[uint64]func(T)
}

// Add registers fn and returns a func that removes it. The returned func is
// safe to call more than once.
func (r *Registry[T]) Add(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listeners == nil {
		r.listeners = make(map[uint64]func(T))
	}
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

// Emit calls every registered listener with v, in registration order.
// Listeners run without the registry lock held, so they may add or remove
// registrations.
func (r *Registry[T]) Emit(v T) {
	for _, fn := range r.snapshot() {
		fn(v)
	}
}

// Len reports the number of registered listeners.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

func (r *Registry[T]) snapshot() []func(T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.listeners) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fns := make([]func(T), len(ids))
	for i, id := range ids {
		fns[i] = r.listeners[id]
	}
	return fns
}
