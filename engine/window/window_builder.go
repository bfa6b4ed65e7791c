package window

import "go.uber.org/zap"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSizeLimits sets the minimum and maximum window size. Zero leaves a bound unchanged.
//
// Parameters:
//   - minWidth, minHeight: the smallest allowed size in pixels
//   - maxWidth, maxHeight: the largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		if minWidth > 0 {
			w.minWidth = minWidth
		}
		if minHeight > 0 {
			w.minHeight = minHeight
		}
		if maxWidth > 0 {
			w.maxWidth = maxWidth
		}
		if maxHeight > 0 {
			w.maxHeight = maxHeight
		}
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithLogger sets the logger for window lifecycle events.
func WithLogger(logger *zap.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if logger != nil {
			w.logger = logger
		}
	}
}
