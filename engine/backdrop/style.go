package backdrop

import (
	"math"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// Style holds the scroll-dependent material settings shared by every object of a layer.
type Style struct {
	TraceOpacity  float64
	NodeOpacity   float64
	SignalOpacity float64
	StreakOpacity float64
	ClearColor    common.Color
}

// StyleFor computes the style for a scroll progress. The circuit fades out and the streaks fade in over the first half
// of the scroll range; past 0.5 nothing changes. Progress is clamped to [0, 1] and NaN is treated as 0.
//
// Parameters:
//   - progress: the page scroll progress
//
// Returns:
//   - Style: the style at that progress
func StyleFor(progress float64) Style {
	p := clampProgress(progress)
	circuit := math.Max(0, 1-2*p)
	streaks := math.Min(1, 2*p)

	return Style{
		TraceOpacity:  TraceBaseOpacity * circuit,
		NodeOpacity:   circuit,
		SignalOpacity: circuit,
		StreakOpacity: StreakBaseOpacity * streaks,
		ClearColor:    CircuitBackdrop.Lerp(StreakBackdrop, streaks),
	}
}

// clampProgress maps progress into [0, 1], with NaN treated as 0.
func clampProgress(progress float64) float64 {
	if math.IsNaN(progress) {
		return 0
	}
	return common.Clamp(progress, 0, 1)
}
