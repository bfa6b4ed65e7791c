package renderer

import (
	"image"
	"image/draw"
	"sync"
)

// Presenter delivers finished frames to a display or other sink.
type Presenter interface {
	// Configure prepares the presenter for frames of the given size.
	//
	// Parameters:
	//   - width, height: the frame size in pixels
	//
	// Returns:
	//   - error: an error if the presenter cannot be configured
	Configure(width, height int) error

	// Present displays a frame. The presenter must not retain frame after returning.
	//
	// Parameters:
	//   - frame: the rendered frame
	//
	// Returns:
	//   - error: an error if presentation fails
	Present(frame *image.RGBA) error

	// Release frees any resources held by the presenter.
	Release()
}

// offscreenPresenterImpl keeps a copy of the most recent frame in memory.
type offscreenPresenterImpl struct {
	mu        *sync.Mutex
	width     int
	height    int
	last      *image.RGBA
	presented uint64
}

// OffscreenPresenter is a Presenter that keeps the last presented frame instead of displaying it.
type OffscreenPresenter interface {
	Presenter

	// Last returns a copy of the most recently presented frame, or nil if nothing was presented.
	//
	// Returns:
	//   - *image.RGBA: the frame copy
	Last() *image.RGBA

	// Presented returns the number of frames presented so far.
	//
	// Returns:
	//   - uint64: the frame count
	Presented() uint64

	// Size returns the configured frame size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)
}

var _ OffscreenPresenter = &offscreenPresenterImpl{}

// NewOffscreenPresenter creates an OffscreenPresenter.
//
// Returns:
//   - OffscreenPresenter: the new presenter
func NewOffscreenPresenter() OffscreenPresenter {
	return &offscreenPresenterImpl{mu: &sync.Mutex{}}
}

func (o *offscreenPresenterImpl) Configure(width, height int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.width, o.height = width, height
	return nil
}

func (o *offscreenPresenterImpl) Present(frame *image.RGBA) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = cloneRGBA(frame)
	o.presented++
	return nil
}

func (o *offscreenPresenterImpl) Release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.last = nil
}

func (o *offscreenPresenterImpl) Last() *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return nil
	}
	return cloneRGBA(o.last)
}

func (o *offscreenPresenterImpl) Presented() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.presented
}

func (o *offscreenPresenterImpl) Size() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.width, o.height
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// asRGBA returns img as an *image.RGBA, converting only when needed.
func asRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
