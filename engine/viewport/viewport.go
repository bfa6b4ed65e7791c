// Package viewport defines the host-side surfaces a renderer attaches to: a resizable viewport that notifies listeners
// and a mount point that holds attached output elements.
package viewport

import "errors"

var (
	// ErrAlreadyAttached is returned when attaching an element that is already attached to the mount point.
	ErrAlreadyAttached = errors.New("element already attached")

	// ErrNotAttached is returned when detaching an element that is not attached to the mount point.
	ErrNotAttached = errors.New("element not attached")

	// ErrInvalidSize is returned when a viewport is given a non-positive dimension.
	ErrInvalidSize = errors.New("invalid viewport size")
)

// ResizeListener receives the new viewport size in pixels.
type ResizeListener func(width, height int)

// ListenerID identifies a registered ResizeListener.
type ListenerID uint64

// Element is an output surface that can be attached to a Mount.
type Element interface {
	// Label returns a human readable name for the element.
	//
	// Returns:
	//   - string: the element label
	Label() string
}

// Viewport is the resizable area the renderer fills.
type Viewport interface {
	// Size returns the current viewport size in pixels.
	//
	// Returns:
	//   - width, height: the viewport dimensions
	Size() (width, height int)

	// AddResizeListener registers fn to be called on every resize.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - ListenerID: the id used to remove the listener
	AddResizeListener(fn ResizeListener) ListenerID

	// RemoveResizeListener unregisters a listener.
	//
	// Parameters:
	//   - id: the id returned by AddResizeListener
	//
	// Returns:
	//   - bool: true if a listener was removed
	RemoveResizeListener(id ListenerID) bool

	// ListenerCount returns the number of registered resize listeners.
	//
	// Returns:
	//   - int: the listener count
	ListenerCount() int
}

// Mount is the container output elements are attached to.
type Mount interface {
	// Attach adds e to the mount point.
	//
	// Parameters:
	//   - e: the element to attach
	//
	// Returns:
	//   - error: ErrAlreadyAttached if e is already attached
	Attach(e Element) error

	// Detach removes e from the mount point.
	//
	// Parameters:
	//   - e: the element to detach
	//
	// Returns:
	//   - error: ErrNotAttached if e is not attached
	Detach(e Element) error

	// Children returns the attached elements in attach order.
	//
	// Returns:
	//   - []Element: a copy of the attached elements
	Children() []Element
}
