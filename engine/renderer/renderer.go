package renderer

import (
	"errors"
	"fmt"
	"image"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"github.com/gogpu/gg"
	"go.uber.org/zap"
)

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("renderer closed")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	label  string
	logger *zap.Logger

	width  int
	height int
	clear  common.Color

	dc        *gg.Context
	frame     *image.RGBA
	presenter Presenter

	workers     int
	projectPool worker.DynamicWorkerPool

	frameCount uint64
	lastCulled int
	closed     bool
}

// Renderer rasterizes DrawLists through a perspective camera into an RGBA frame and hands each frame to a Presenter.
//
// Rendering runs in two passes. The projection pass transforms every layer into screen space on a worker pool,
// one task per layer, and culls shapes outside the view frustum. The raster pass then draws the projected layers
// back to front with gogpu/gg.
type Renderer interface {
	viewport.Element

	// SetSize resizes the drawing surface and reconfigures the presenter.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: viewport.ErrInvalidSize for non-positive sizes, or a presenter error
	SetSize(width, height int) error

	// Size returns the drawing surface size.
	//
	// Returns:
	//   - width, height: the size in pixels
	Size() (width, height int)

	// SetClearColor sets the colour the frame is cleared to before drawing.
	//
	// Parameters:
	//   - c: the clear colour
	SetClearColor(c common.Color)

	// ClearColor returns the current clear colour.
	//
	// Returns:
	//   - common.Color: the clear colour
	ClearColor() common.Color

	// Render draws list as seen through cam and presents the result.
	//
	// Parameters:
	//   - list: the frame contents, nil clears the frame
	//   - cam: the camera supplying the view-projection matrix
	//
	// Returns:
	//   - error: an error if drawing or presentation fails, or ErrClosed after Close
	Render(list *DrawList, cam camera.Camera) error

	// Image returns a copy of the last rendered frame, or nil before the first frame.
	//
	// Returns:
	//   - *image.RGBA: the frame copy
	Image() *image.RGBA

	// EncodePNG writes the last rendered frame as PNG.
	//
	// Parameters:
	//   - w: the destination writer
	//
	// Returns:
	//   - error: an encoding or write error
	EncodePNG(w io.Writer) error

	// FrameCount returns the number of frames rendered.
	//
	// Returns:
	//   - uint64: the frame count
	FrameCount() uint64

	// LastCulled returns how many shapes the last frame culled.
	//
	// Returns:
	//   - int: the culled shape count
	LastCulled() int

	// Close stops the projection workers and releases the presenter and drawing context.
	// Safe to call multiple times.
	//
	// Returns:
	//   - error: an error from releasing the drawing context
	Close() error
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with a drawing surface of the given size.
//
// Parameters:
//   - width, height: the initial surface size in pixels
//   - options: functional options applied before the surface is created
//
// Returns:
//   - Renderer: the new renderer
//   - error: viewport.ErrInvalidSize for non-positive sizes, or a presenter configuration error
func NewRenderer(width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, width, height)
	}
	r := &renderer{
		mu:      &sync.Mutex{},
		label:   "backdrop-canvas",
		logger:  zap.NewNop(),
		width:   width,
		height:  height,
		clear:   common.ColorFromHex(0x000000),
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range options {
		opt(r)
	}

	if r.presenter != nil {
		if err := r.presenter.Configure(width, height); err != nil {
			return nil, fmt.Errorf("configure presenter: %w", err)
		}
	}

	r.dc = gg.NewContext(width, height)
	// Queue size of 64 covers every layer of a frame with headroom.
	r.projectPool = worker.NewDynamicWorkerPool(r.workers, 64, time.Second)

	r.logger.Debug("renderer created",
		zap.String("label", r.label),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("workers", r.workers),
	)
	return r, nil
}

func (r *renderer) Label() string {
	return r.label
}

func (r *renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", viewport.ErrInvalidSize, width, height)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	if width == r.width && height == r.height {
		return nil
	}
	if err := r.dc.Resize(width, height); err != nil {
		return fmt.Errorf("resize drawing context: %w", err)
	}
	r.width, r.height = width, height
	if r.presenter != nil {
		if err := r.presenter.Configure(width, height); err != nil {
			return fmt.Errorf("configure presenter: %w", err)
		}
	}
	r.logger.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetClearColor(c common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = c
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clear
}

func (r *renderer) Render(list *DrawList, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("render %s: %w", r.label, ErrClosed)
	}

	var layers []screenLayer
	if list != nil && cam != nil {
		layers = r.projectLayers(list, cam)
	}

	r.dc.ClearWithColor(toRGBA(r.clear, 1))
	if err := rasterize(r.dc, layers); err != nil {
		return fmt.Errorf("rasterize frame %d: %w", r.frameCount, err)
	}
	r.frame = asRGBA(r.dc.Image())
	r.frameCount++

	if r.presenter != nil {
		if err := r.presenter.Present(r.frame); err != nil {
			return fmt.Errorf("present frame %d: %w", r.frameCount, err)
		}
	}
	return nil
}

// projectLayers runs the projection pass. Each visible layer is one pool task;
// a WaitGroup is the per-frame barrier since pool.Wait() only returns once workers go idle.
// Caller must hold the mutex.
func (r *renderer) projectLayers(list *DrawList, cam camera.Camera) []screenLayer {
	p := &projector{
		viewProj: cam.ViewProjectionMatrix(),
		frustum:  cam.Frustum(),
		width:    r.width,
		height:   r.height,
	}

	results := make([]screenLayer, len(list.Layers))
	var wg sync.WaitGroup
	for i := range list.Layers {
		l := &list.Layers[i]
		if !l.Visible() {
			continue
		}
		wg.Add(1)
		idx := i
		r.projectPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				results[idx] = p.projectLayer(l)
				return nil, nil
			},
		})
	}
	wg.Wait()

	culled := 0
	for i := range results {
		culled += results[i].culled
	}
	r.lastCulled = culled
	return results
}

func (r *renderer) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frame == nil {
		return nil
	}
	return cloneRGBA(r.frame)
}

func (r *renderer) EncodePNG(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frame == nil {
		return fmt.Errorf("encode %s: no frame rendered", r.label)
	}
	return r.dc.EncodePNG(w)
}

func (r *renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

func (r *renderer) LastCulled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastCulled
}

func (r *renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.projectPool.Stop()
	if r.presenter != nil {
		r.presenter.Release()
	}
	r.logger.Debug("renderer closed", zap.String("label", r.label), zap.Uint64("frames", r.frameCount))
	return r.dc.Close()
}
