package backdrop

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
	"github.com/stretchr/testify/assert"
)

func TestStyleScenarios(t *testing.T) {
	cases := []struct {
		name     string
		progress float64
		trace    float64
		circuit  float64
		streak   float64
		clear    common.Color
	}{
		{"top of page", 0, 0.2, 1, 0, CircuitBackdrop},
		{"quarter", 0.25, 0.1, 0.5, 0.35, common.Color{R: 5.0 / 255, G: 30.5 / 255, B: 64.0 / 255}},
		{"halfway", 0.5, 0, 0, 0.7, StreakBackdrop},
		{"bottom of page", 1, 0, 0, 0.7, StreakBackdrop},
		{"clamped below", -3, 0.2, 1, 0, CircuitBackdrop},
		{"clamped above", 7, 0, 0, 0.7, StreakBackdrop},
		{"nan", math.NaN(), 0.2, 1, 0, CircuitBackdrop},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := StyleFor(tc.progress)
			assert.InDelta(t, tc.trace, s.TraceOpacity, 1e-12)
			assert.InDelta(t, tc.circuit, s.NodeOpacity, 1e-12)
			assert.InDelta(t, tc.circuit, s.SignalOpacity, 1e-12)
			assert.InDelta(t, tc.streak, s.StreakOpacity, 1e-12)
			assert.InDelta(t, tc.clear.R, s.ClearColor.R, 1e-9)
			assert.InDelta(t, tc.clear.G, s.ClearColor.G, 1e-9)
			assert.InDelta(t, tc.clear.B, s.ClearColor.B, 1e-9)
		})
	}
}

func TestStyleIsMonotonic(t *testing.T) {
	prev := StyleFor(0)
	for i := 1; i <= 100; i++ {
		p := float64(i) / 100
		s := StyleFor(p)
		if p <= 0.5 {
			assert.Less(t, s.TraceOpacity, prev.TraceOpacity, "p=%v", p)
			assert.Less(t, s.NodeOpacity, prev.NodeOpacity, "p=%v", p)
			assert.Greater(t, s.StreakOpacity, prev.StreakOpacity, "p=%v", p)
		} else {
			assert.Zero(t, s.TraceOpacity)
			assert.Zero(t, s.NodeOpacity)
			assert.Equal(t, StreakBaseOpacity, s.StreakOpacity)
			assert.Equal(t, StreakBackdrop, s.ClearColor)
		}
		prev = s
	}
}
