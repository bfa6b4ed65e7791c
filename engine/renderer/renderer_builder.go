package renderer

import (
	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresenter sets the Presenter every rendered frame is handed to.
//
// Parameters:
//   - p: the presenter, nil renders without presenting
//
// Returns:
//   - RendererBuilderOption: a function that applies the presenter option to a renderer
func WithPresenter(p Presenter) RendererBuilderOption {
	return func(r *renderer) {
		r.presenter = p
	}
}

// WithLogger sets the logger used for lifecycle and resize events.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithWorkers sets the number of projection workers. Values <= 0 keep the default of NumCPU-1.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLabel sets the element label reported to the mount point.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - RendererBuilderOption: a function that applies the label option to a renderer
func WithLabel(label string) RendererBuilderOption {
	return func(r *renderer) {
		r.label = label
	}
}

// WithClearColor sets the initial clear colour.
//
// Parameters:
//   - c: the clear colour
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear colour option to a renderer
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clear = c
	}
}
