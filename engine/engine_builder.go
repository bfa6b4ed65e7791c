package engine

import (
	"github.com/Carmen-Shannon/oxy-backdrop/engine/backdrop"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/page"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer/wgpu_presenter"
	"github.com/Carmen-Shannon/oxy-backdrop/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics logging.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the frame rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60
		}
		e.tickRate = fps
	}
}

// WithFrameLimit stops the engine after n frames. Zero runs until the window closes.
//
// Parameters:
//   - n: the number of frames
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = n
	}
}

// WithVSync selects VSync presentation (true) or uncapped presentation (false).
func WithVSync(vsync bool) EngineBuilderOption {
	return func(e *engine) {
		if vsync {
			e.presentMode = wgpu_presenter.PresentModeVSync
		} else {
			e.presentMode = wgpu_presenter.PresentModeUncapped
		}
	}
}

// WithSoftwareRenderer forces the WebGPU software fallback adapter.
func WithSoftwareRenderer(force bool) EngineBuilderOption {
	return func(e *engine) {
		e.softwareRender = force
	}
}

// WithWorkers sets the renderer projection worker count. Zero keeps the renderer default.
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		e.workers = n
	}
}

// WithWindow sets a custom configured window for the engine to use rather than allowing the engine
// to create and manage one internally.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions sets the options used when the engine creates its own window.
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithBackdropOptions passes options through to the backdrop.
func WithBackdropOptions(options ...backdrop.BackdropBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.backdropOptions = append(e.backdropOptions, options...)
	}
}

// WithScrollOptions passes options through to the page scroll tracker.
func WithScrollOptions(options ...page.ScrollTrackerBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.scrollOptions = append(e.scrollOptions, options...)
	}
}

// WithPresenterFactory replaces the WebGPU presenter, e.g. with an offscreen one.
//
// Parameters:
//   - factory: creates a presenter for each mounted renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPresenterFactory(factory PresenterFactory) EngineBuilderOption {
	return func(e *engine) {
		e.presenterFactory = factory
	}
}

// WithLogger sets the root logger; components receive named children of it.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
