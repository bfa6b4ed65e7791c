package scheduler

import (
	"time"

	"go.uber.org/zap"
)

// TickerBuilderOption is a functional option for configuring a Ticker.
type TickerBuilderOption func(*tickerImpl)

// WithRate sets the target frame rate in frames per second.
// Values <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - fps: target frames per second
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithRate(fps float64) TickerBuilderOption {
	return func(t *tickerImpl) {
		if fps <= 0 {
			fps = 60
		}
		t.interval = time.Duration(float64(time.Second) / fps)
	}
}

// WithFrameLimit stops the ticker after n frames. Zero runs until Stop.
//
// Parameters:
//   - n: the number of frames to dispatch
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithFrameLimit(n uint64) TickerBuilderOption {
	return func(t *tickerImpl) {
		t.frameLimit = n
	}
}

// WithLogger sets the logger used to report recovered callback panics.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) TickerBuilderOption {
	return func(t *tickerImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithAfterFrame registers a hook run on the frame goroutine after each frame's callbacks, e.g. a profiler tick.
//
// Parameters:
//   - fn: the hook receiving the frame delta in seconds
//
// Returns:
//   - TickerBuilderOption: option function to apply
func WithAfterFrame(fn func(dt float32)) TickerBuilderOption {
	return func(t *tickerImpl) {
		t.afterFrame = fn
	}
}
