package viewport

import (
	"fmt"
	"sync"
)

// headlessImpl is an in-memory Viewport and Mount.
type headlessImpl struct {
	Registry

	mu     *sync.Mutex
	width  int
	height int
}

// Headless is a Viewport and Mount with no platform window behind it.
// Used by the offscreen renderer and by tests.
type Headless interface {
	Viewport
	Mount

	// Resize changes the viewport size and notifies every resize listener.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: ErrInvalidSize if either dimension is not positive
	Resize(width, height int) error
}

var _ Headless = &headlessImpl{}

// NewHeadless creates a Headless viewport with the given initial size.
//
// Parameters:
//   - width, height: the initial size in pixels
//
// Returns:
//   - Headless: the new viewport
//   - error: ErrInvalidSize if either dimension is not positive
func NewHeadless(width, height int) (Headless, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &headlessImpl{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
	}, nil
}

func (h *headlessImpl) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *headlessImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()

	h.Notify(width, height)
	return nil
}
