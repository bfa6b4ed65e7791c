// Package backdrop animates the procedural page background: a circuit board of traces with travelling signals that
// crossfades into a field of drifting light streaks as the page scrolls.
package backdrop

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/camera"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/viewport"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyMounted is returned by Mount when the backdrop is already mounted.
	ErrAlreadyMounted = errors.New("backdrop already mounted")

	// ErrNotMounted is returned by operations that need a mounted backdrop.
	ErrNotMounted = errors.New("backdrop not mounted")
)

// Surface is the output element the backdrop draws into. renderer.Renderer satisfies it.
type Surface interface {
	viewport.Element
	SetSize(width, height int) error
	SetClearColor(c common.Color)
	Render(list *renderer.DrawList, cam camera.Camera) error
	Close() error
}

// SurfaceFactory allocates a Surface of the given size.
type SurfaceFactory func(width, height int) (Surface, error)

// backdropImpl is the implementation of the Backdrop interface.
type backdropImpl struct {
	mu *sync.Mutex

	logger    *zap.Logger
	viewport  viewport.Viewport
	mount     viewport.Mount
	scheduler scheduler.Scheduler
	factory   SurfaceFactory

	seed        uint64
	traceCount  int
	streakCount int
	onFrame     func(state *SceneState)

	progress float64
	camera   camera.Camera

	// Mounted resources. gen changes on every Mount and Unmount so stale frame callbacks can tell they are stale.
	mounted  bool
	gen      uint64
	ctx      context.Context
	surface  Surface
	state    *SceneState
	listener viewport.ListenerID
	handle   *scheduler.Handle
	frames   uint64
}

// Backdrop is the animated page background.
//
// A Backdrop is created unmounted. Mount allocates a surface, generates the scene and starts requesting frames from the
// scheduler; Unmount tears all of it down again. Scroll progress survives remounting.
type Backdrop interface {
	// Mount allocates a surface sized to the viewport, attaches it to the mount point, generates the scene, applies
	// the current scroll style, registers the resize listener and requests the first frame.
	// Once ctx is done the animation stops rescheduling; Unmount still has to be called to release resources.
	//
	// Parameters:
	//   - ctx: bounds the lifetime of the animation loop
	//
	// Returns:
	//   - error: ErrAlreadyMounted when mounted, or a surface or attach error
	Mount(ctx context.Context) error

	// Unmount removes the resize listener, cancels the pending frame, detaches and closes the surface.
	// Safe to call multiple times and when never mounted.
	Unmount()

	// Mounted reports whether the backdrop is mounted.
	//
	// Returns:
	//   - bool: true between Mount and Unmount
	Mounted() bool

	// SetScrollProgress restyles the scene for the given page scroll progress. Values are clamped to [0, 1].
	//
	// Parameters:
	//   - progress: the page scroll progress
	SetScrollProgress(progress float64)

	// ScrollProgress returns the clamped scroll progress last applied.
	//
	// Returns:
	//   - float64: the progress in [0, 1]
	ScrollProgress() float64

	// Style returns the style for the current scroll progress.
	//
	// Returns:
	//   - Style: the current style
	Style() Style

	// Camera returns the camera the scene is viewed through.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Frames returns the number of frames rendered since the last Mount.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Inspect runs fn with the live scene while holding the backdrop lock. fn must not retain the state.
	//
	// Parameters:
	//   - fn: the inspection function
	//
	// Returns:
	//   - error: ErrNotMounted when there is no scene
	Inspect(fn func(state *SceneState)) error
}

var _ Backdrop = &backdropImpl{}

// NewBackdrop creates an unmounted Backdrop.
//
// Parameters:
//   - vp: the viewport whose size the surface follows
//   - mount: the mount point the surface is attached to
//   - sched: the frame scheduler driving the animation
//   - factory: allocates the output surface on Mount
//   - options: functional options
//
// Returns:
//   - Backdrop: the new backdrop
func NewBackdrop(vp viewport.Viewport, mount viewport.Mount, sched scheduler.Scheduler, factory SurfaceFactory, options ...BackdropBuilderOption) Backdrop {
	b := &backdropImpl{
		mu:          &sync.Mutex{},
		logger:      zap.NewNop(),
		viewport:    vp,
		mount:       mount,
		scheduler:   sched,
		factory:     factory,
		seed:        rand.Uint64(),
		traceCount:  DefaultTraceCount,
		streakCount: DefaultStreakCount,
	}
	for _, opt := range options {
		opt(b)
	}

	w, h := vp.Size()
	b.camera = camera.NewCamera(
		camera.WithFovDegrees(CameraFovDegrees),
		camera.WithAspect(aspectOf(w, h)),
		camera.WithNear(CameraNear),
		camera.WithFar(CameraFar),
		camera.WithController(camera.NewFixedController([3]float32{0, 0, CameraDistance}, [3]float32{})),
	)
	return b
}

func (b *backdropImpl) Mount(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mounted {
		return ErrAlreadyMounted
	}

	w, h := b.viewport.Size()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("mount backdrop: %w: %dx%d", viewport.ErrInvalidSize, w, h)
	}
	surface, err := b.factory(w, h)
	if err != nil {
		return fmt.Errorf("mount backdrop: create surface: %w", err)
	}
	if err := b.mount.Attach(surface); err != nil {
		_ = surface.Close()
		return fmt.Errorf("mount backdrop: %w", err)
	}

	rng := rand.New(rand.NewPCG(b.seed, b.seed^0x9e3779b97f4a7c15))
	b.state = NewSceneState(rng, b.traceCount, b.streakCount)
	b.state.ApplyStyle(StyleFor(b.progress))
	b.camera.SetAspect(aspectOf(w, h))

	b.surface = surface
	b.ctx = ctx
	b.frames = 0
	b.gen++
	b.mounted = true
	b.listener = b.viewport.AddResizeListener(b.onResize)
	b.handle = b.scheduler.RequestFrame(b.frameCallback(b.gen))

	b.logger.Info("backdrop mounted",
		zap.String("surface", surface.Label()),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Uint64("seed", b.seed),
		zap.Int("traces", len(b.state.traces)),
		zap.Int("nodes", len(b.state.nodes)),
		zap.Int("signals", len(b.state.signals)),
		zap.Int("streaks", len(b.state.streaks)),
	)
	return nil
}

func (b *backdropImpl) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.mounted {
		return
	}
	b.mounted = false
	b.gen++

	b.viewport.RemoveResizeListener(b.listener)
	b.scheduler.Cancel(b.handle)
	b.handle = nil
	if err := b.mount.Detach(b.surface); err != nil {
		b.logger.Warn("detach surface", zap.Error(err))
	}
	if err := b.surface.Close(); err != nil {
		b.logger.Warn("close surface", zap.Error(err))
	}
	b.surface = nil
	b.state = nil
	b.ctx = nil

	b.logger.Info("backdrop unmounted", zap.Uint64("frames", b.frames))
}

func (b *backdropImpl) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

func (b *backdropImpl) SetScrollProgress(progress float64) {
	progress = clampProgress(progress)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.progress = progress
	if b.state != nil {
		b.state.ApplyStyle(StyleFor(progress))
	}
}

func (b *backdropImpl) ScrollProgress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

func (b *backdropImpl) Style() Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	return StyleFor(b.progress)
}

func (b *backdropImpl) Camera() camera.Camera {
	return b.camera
}

func (b *backdropImpl) Frames() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

func (b *backdropImpl) Inspect(fn func(state *SceneState)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == nil {
		return ErrNotMounted
	}
	fn(b.state)
	return nil
}

// onResize follows the viewport size. Zero sizes (a minimised window) are ignored.
func (b *backdropImpl) onResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	surface := b.surface
	b.camera.SetAspect(aspectOf(width, height))
	b.mu.Unlock()

	if err := surface.SetSize(width, height); err != nil {
		b.logger.Warn("resize surface", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
	}
}

// frameCallback returns the per-frame callback bound to one mount generation. A callback from an earlier generation
// does nothing, and a callback never reschedules once the backdrop is unmounted or its context is done.
func (b *backdropImpl) frameCallback(gen uint64) scheduler.FrameCallback {
	return func(float32) {
		b.mu.Lock()
		if !b.mounted || b.gen != gen {
			b.mu.Unlock()
			return
		}
		if err := b.ctx.Err(); err != nil {
			b.handle = nil
			b.mu.Unlock()
			b.logger.Debug("backdrop animation stopped", zap.Error(err))
			return
		}

		b.handle = b.scheduler.RequestFrame(b.frameCallback(gen))
		b.state.Tick()
		list := b.state.DrawList()
		clearColor := b.state.style.ClearColor
		surface := b.surface
		b.frames++
		onFrame := b.onFrame
		if onFrame != nil {
			onFrame(b.state)
		}
		b.mu.Unlock()

		surface.SetClearColor(clearColor)
		if err := surface.Render(list, b.camera); err != nil {
			// Unmount may close the surface while this frame is drawing.
			if errors.Is(err, renderer.ErrClosed) {
				return
			}
			b.logger.Warn("render frame", zap.Error(err))
		}
	}
}

func aspectOf(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
