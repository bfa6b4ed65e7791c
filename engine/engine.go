package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/page"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/profiler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/wgpu_presenter"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned by Run when the engine is running or has already been shut down.
var ErrAlreadyRunning = errors.New("engine already running")

// PresenterFactory creates the presenter a freshly mounted renderer hands its frames to.
type PresenterFactory func(src wgpu_presenter.SurfaceSource) (renderer.Presenter, error)

// engine implements the Engine interface.
// The window loop owns the main thread; frames are produced on the ticker goroutine.
type engine struct {
	logger *zap.Logger

	window        window.Window
	windowOptions []window.WindowBuilderOption

	ticker     scheduler.Ticker
	tickRate   float64
	frameLimit uint64

	scroll        page.ScrollTracker
	scrollOptions []page.ScrollTrackerBuilderOption

	backdrop        backdrop.Backdrop
	backdropOptions []backdrop.BackdropBuilderOption

	presenterFactory PresenterFactory
	presentMode      wgpu_presenter.PresentMode
	softwareRender   bool
	workers          int

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	running      atomic.Bool
	cancel       context.CancelFunc
	cancelMu     *sync.Mutex
	wg           sync.WaitGroup
	quitOnce     sync.Once
	shutdownOnce sync.Once
}

// Engine hosts the backdrop in a desktop window.
// It wires the window as viewport and mount point, a WebGPU presenter behind the renderer, a ticker driving frames,
// and a scroll tracker fed by wheel and keyboard input whose progress restyles the backdrop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Backdrop returns the hosted backdrop.
	//
	// Returns:
	//   - backdrop.Backdrop: the backdrop
	Backdrop() backdrop.Backdrop

	// Scroll returns the page scroll tracker.
	//
	// Returns:
	//   - page.ScrollTracker: the tracker
	Scroll() page.ScrollTracker

	// EnableProfiler enables frame statistics logging.
	EnableProfiler()

	// DisableProfiler disables frame statistics logging.
	DisableProfiler()

	// Run mounts the backdrop, starts the ticker and blocks in the window loop until the window closes, ctx is done,
	// the frame limit is reached or Quit is called. Everything is torn down before Run returns.
	// Must be called from the goroutine that created the engine.
	//
	// Parameters:
	//   - ctx: bounds the run
	//
	// Returns:
	//   - error: ErrAlreadyRunning on a second call, or a mount error
	Run(ctx context.Context) error

	// Quit asks the window loop to stop. Safe to call multiple times and from any goroutine.
	// When the engine never ran, Quit releases the window directly.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine. Unless WithWindow is given, it opens a window, so it must be called from the main
// goroutine.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the window cannot be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger:      zap.NewNop(),
		tickRate:    60,
		presentMode: wgpu_presenter.PresentModeVSync,
		cancelMu:    &sync.Mutex{},
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		w, err := window.NewWindow(append([]window.WindowBuilderOption{window.WithLogger(e.logger)}, e.windowOptions...)...)
		if err != nil {
			return nil, fmt.Errorf("create window: %w", err)
		}
		e.window = w
	}
	if e.presenterFactory == nil {
		e.presenterFactory = e.wgpuPresenter
	}

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	e.ticker = scheduler.NewTicker(
		scheduler.WithRate(e.tickRate),
		scheduler.WithFrameLimit(e.frameLimit),
		scheduler.WithLogger(e.logger.Named("scheduler")),
		scheduler.WithAfterFrame(func(float32) {
			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}
		}),
	)

	_, height := e.window.Size()
	e.scroll = page.NewScrollTracker(float64(height),
		append([]page.ScrollTrackerBuilderOption{page.WithLogger(e.logger.Named("page"))}, e.scrollOptions...)...)

	e.backdrop = backdrop.NewBackdrop(e.window, e.window, e.ticker, e.newSurface,
		append([]backdrop.BackdropBuilderOption{backdrop.WithLogger(e.logger.Named("backdrop"))}, e.backdropOptions...)...)

	e.scroll.Subscribe(e.backdrop.SetScrollProgress)
	e.window.AddResizeListener(e.scroll.OnResize)
	e.window.SetScrollCallback(e.scroll.Wheel)
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		e.scroll.HandleKey(keyCode)
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Backdrop() backdrop.Backdrop {
	return e.backdrop
}

func (e *engine) Scroll() page.ScrollTracker {
	return e.scroll
}

// EnableProfiler enables frame statistics logging.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables frame statistics logging.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.shutdown()

	ctx, cancel := context.WithCancel(ctx)
	e.cancelMu.Lock()
	e.cancel = cancel
	e.cancelMu.Unlock()

	if err := e.backdrop.Mount(ctx); err != nil {
		return fmt.Errorf("mount backdrop: %w", err)
	}
	e.ticker.Start()

	e.wg.Add(1)
	go e.handleQuit(ctx)

	e.logger.Info("engine running", zap.Duration("frame_interval", e.ticker.Interval()))
	e.window.ProcessMessages()
	return nil
}

// Quit signals the window loop to stop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
	if e.running.CompareAndSwap(false, true) {
		e.shutdown()
	}
}

// signalQuit cancels the run context and asks the window to close.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.cancelMu.Lock()
		if e.cancel != nil {
			e.cancel()
		}
		e.cancelMu.Unlock()
		e.window.RequestClose()
	})
}

// handleQuit closes the window once the run context is done or the ticker stops on its own.
func (e *engine) handleQuit(ctx context.Context) {
	defer e.wg.Done()
	select {
	case <-ctx.Done():
	case <-e.ticker.Done():
	}
	e.signalQuit()
}

// shutdown tears down in reverse order of construction: ticker, backdrop, window.
func (e *engine) shutdown() {
	e.shutdownOnce.Do(func() {
		e.signalQuit()
		e.ticker.Stop()
		e.wg.Wait()
		e.backdrop.Unmount()
		if err := e.window.Close(); err != nil {
			e.logger.Warn("close window", zap.Error(err))
		}
		e.logger.Info("engine stopped", zap.Uint64("frames", e.ticker.Frames()))
		_ = e.logger.Sync()
	})
}

// newSurface is the backdrop surface factory: a renderer presenting through a presenter bound to the window.
func (e *engine) newSurface(width, height int) (backdrop.Surface, error) {
	p, err := e.presenterFactory(e.window)
	if err != nil {
		return nil, fmt.Errorf("create presenter: %w", err)
	}
	opts := []renderer.RendererBuilderOption{
		renderer.WithPresenter(p),
		renderer.WithLogger(e.logger.Named("renderer")),
	}
	if e.workers > 0 {
		opts = append(opts, renderer.WithWorkers(e.workers))
	}
	r, err := renderer.NewRenderer(width, height, opts...)
	if err != nil {
		p.Release()
		return nil, err
	}
	return r, nil
}

func (e *engine) wgpuPresenter(src wgpu_presenter.SurfaceSource) (renderer.Presenter, error) {
	return wgpu_presenter.NewWGPUPresenter(src,
		wgpu_presenter.WithPresentMode(e.presentMode),
		wgpu_presenter.WithForceSoftwareRenderer(e.softwareRender),
		wgpu_presenter.WithLogger(e.logger.Named("presenter")),
	)
}
