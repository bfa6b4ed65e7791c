package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// Window provides platform windowing and input event handling.
// It is the viewport the backdrop fills and the mount point its surface attaches to.
type Window interface {
	viewport.Viewport
	viewport.Mount

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical wheel delta (positive = up)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration. Safe from any goroutine.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// Registry fans framebuffer resizes out to listeners and holds attached surfaces.
	viewport.Registry

	mu *sync.Mutex

	logger *zap.Logger

	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	closeRequested bool

	onUpdate  func()
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		logger:    zap.NewNop(),
		title:     "oxy backdrop",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	w.logger.Info("window created", zap.String("title", w.title), zap.Int("width", w.width), zap.Int("height", w.height))
	return w, nil
}

func (w *engineWindow) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	requested := w.closeRequested
	w.mu.Unlock()
	return !requested && platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeRequested = true
}

func (w *engineWindow) Close() error {
	w.logger.Info("window closed")
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

// resize records the framebuffer size and notifies resize listeners.
func (w *engineWindow) resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()

	w.logger.Debug("framebuffer resized", zap.Int("width", width), zap.Int("height", height))
	w.Notify(width, height)
}
