package viewport

import (
	"slices"
	"sync"
)

// Registry is a concurrency-safe set of resize listeners and attached elements.
// Viewport implementations embed it and call Notify from their resize path.
type Registry struct {
	mu        sync.Mutex
	nextID    ListenerID
	listeners map[ListenerID]ResizeListener
	order     []ListenerID
	children  []Element
}

// AddResizeListener registers fn and returns its id.
func (r *Registry) AddResizeListener(fn ResizeListener) ListenerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listeners == nil {
		r.listeners = make(map[ListenerID]ResizeListener)
	}
	r.nextID++
	r.listeners[r.nextID] = fn
	r.order = append(r.order, r.nextID)
	return r.nextID
}

// RemoveResizeListener unregisters the listener with the given id.
func (r *Registry) RemoveResizeListener(id ListenerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listeners[id]; !ok {
		return false
	}
	delete(r.listeners, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// ListenerCount returns the number of registered listeners.
func (r *Registry) ListenerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}

// Notify calls every registered listener in registration order.
// Listeners run outside the lock so they may add or remove listeners.
//
// Parameters:
//   - width, height: the new viewport size in pixels
func (r *Registry) Notify(width, height int) {
	r.mu.Lock()
	fns := make([]ResizeListener, 0, len(r.order))
	for _, id := range r.order {
		fns = append(fns, r.listeners[id])
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(width, height)
	}
}

// Attach adds e to the attached elements.
func (r *Registry) Attach(e Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.children, e) {
		return ErrAlreadyAttached
	}
	r.children = append(r.children, e)
	return nil
}

// Detach removes e from the attached elements.
func (r *Registry) Detach(e Element) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.children, e)
	if i < 0 {
		return ErrNotAttached
	}
	r.children = slices.Delete(r.children, i, i+1)
	return nil
}

// Children returns a copy of the attached elements.
func (r *Registry) Children() []Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.children)
}
