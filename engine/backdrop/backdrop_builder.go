package backdrop

import "go.uber.org/zap"

// BackdropBuilderOption is a functional option applied to the backdrop during construction via NewBackdrop.
type BackdropBuilderOption func(*backdropImpl)

// WithSeed fixes the random seed used to generate the scene, making every Mount produce the same board.
//
// Parameters:
//   - seed: the seed
//
// Returns:
//   - BackdropBuilderOption: a function that applies the seed option
func WithSeed(seed uint64) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.seed = seed
	}
}

// WithTraceCount sets how many circuit traces are generated. Negative values are ignored.
//
// Parameters:
//   - n: the trace count
//
// Returns:
//   - BackdropBuilderOption: a function that applies the trace count option
func WithTraceCount(n int) BackdropBuilderOption {
	return func(b *backdropImpl) {
		if n >= 0 {
			b.traceCount = n
		}
	}
}

// WithStreakCount sets how many streaks are generated. Negative values are ignored.
//
// Parameters:
//   - n: the streak count
//
// Returns:
//   - BackdropBuilderOption: a function that applies the streak count option
func WithStreakCount(n int) BackdropBuilderOption {
	return func(b *backdropImpl) {
		if n >= 0 {
			b.streakCount = n
		}
	}
}

// WithScrollProgress sets the initial scroll progress.
//
// Parameters:
//   - p: the progress, clamped to [0, 1] with NaN treated as 0
//
// Returns:
//   - BackdropBuilderOption: a function that applies the scroll progress option
func WithScrollProgress(p float64) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.progress = clampProgress(p)
	}
}

// WithLogger sets the logger for lifecycle and frame errors.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - BackdropBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) BackdropBuilderOption {
	return func(b *backdropImpl) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFrameHook registers fn to observe the scene after every tick, while the backdrop lock is held.
// fn must not retain the state or call back into the backdrop.
//
// Parameters:
//   - fn: the hook
//
// Returns:
//   - BackdropBuilderOption: a function that applies the hook option
func WithFrameHook(fn func(state *SceneState)) BackdropBuilderOption {
	return func(b *backdropImpl) {
		b.onFrame = fn
	}
}
