package page

import "go.uber.org/zap"

// ScrollTrackerBuilderOption is a functional option applied to the tracker during construction via NewScrollTracker.
type ScrollTrackerBuilderOption func(*scrollTrackerImpl)

// WithPageScreens sets the page height as a multiple of the viewport height. Values below 1 are raised to 1,
// which makes the page unscrollable.
//
// Parameters:
//   - screens: the page height in viewport heights
//
// Returns:
//   - ScrollTrackerBuilderOption: a function that applies the page height option
func WithPageScreens(screens float64) ScrollTrackerBuilderOption {
	return func(s *scrollTrackerImpl) {
		s.pageScreens = max(screens, 1)
	}
}

// WithWheelStep sets the pixels scrolled per wheel notch.
func WithWheelStep(px float64) ScrollTrackerBuilderOption {
	return func(s *scrollTrackerImpl) {
		if px > 0 {
			s.wheelStep = px
		}
	}
}

// WithLineStep sets the pixels scrolled by the arrow keys.
func WithLineStep(px float64) ScrollTrackerBuilderOption {
	return func(s *scrollTrackerImpl) {
		if px > 0 {
			s.lineStep = px
		}
	}
}

// WithLogger sets the logger for scroll events.
//
// Parameters:
//   - logger: the zap logger, nil keeps the no-op logger
//
// Returns:
//   - ScrollTrackerBuilderOption: a function that applies the logger option
func WithLogger(logger *zap.Logger) ScrollTrackerBuilderOption {
	return func(s *scrollTrackerImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}
