package backdrop

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneTickInvariants(t *testing.T) {
	s := NewSceneState(testRand(11), DefaultTraceCount, DefaultStreakCount)
	require.NotEmpty(t, s.Signals())

	for range 2000 {
		s.Tick()
		for _, sig := range s.signals {
			require.GreaterOrEqual(t, sig.Progress(), 0.0)
			require.Less(t, sig.Progress(), 1.0)
		}
		for _, st := range s.streaks {
			require.GreaterOrEqual(t, st.Position.X, float32(-StreakBoundX))
			require.LessOrEqual(t, st.Position.X, float32(StreakBoundX))
		}
	}
	assert.Equal(t, uint64(2000), s.Ticks())
}

func TestSceneTickMovesSignalsAndStreaks(t *testing.T) {
	s := NewSceneState(testRand(5), 20, 10)
	require.NotEmpty(t, s.signals)

	sig := s.signals[0]
	before := sig.Progress()
	streak := s.streaks[0]

	s.Tick()
	assert.Equal(t, math.Mod(before+sig.Speed(), 1), sig.Progress())
	assert.Equal(t, sig.Trace().PointAt(sig.Progress()), sig.Position())

	moved := s.streaks[0]
	if streak.Position.X+streak.Speed > StreakBoundX {
		assert.Equal(t, float32(-StreakBoundX), moved.Position.X)
	} else {
		assert.Equal(t, streak.Position.X+streak.Speed, moved.Position.X)
	}
	assert.Equal(t, streak.Position.Y, moved.Position.Y)
}

func TestSceneDrawList(t *testing.T) {
	s := NewSceneState(testRand(9), 12, 30)
	s.ApplyStyle(StyleFor(0.25))
	list := s.DrawList()

	require.Len(t, list.Layers, 4)
	traces, nodes, signals, streaks := list.Layers[0], list.Layers[1], list.Layers[2], list.Layers[3]

	assert.Equal(t, LayerTraces, traces.Name)
	assert.Len(t, traces.Shapes, 12)
	assert.Equal(t, renderer.ShapePolyline, traces.Shapes[0].Kind)
	assert.InDelta(t, 0.1, traces.Opacity, 1e-12)
	assert.Equal(t, TraceColor, traces.Color)

	assert.Equal(t, LayerNodes, nodes.Name)
	assert.Len(t, nodes.Shapes, len(s.nodes))
	assert.Equal(t, renderer.ShapeRing, nodes.Shapes[0].Kind)
	assert.Equal(t, float32(NodeInnerRadius), nodes.Shapes[0].InnerRadius)
	assert.Equal(t, float32(NodeOuterRadius), nodes.Shapes[0].Radius)

	assert.Equal(t, LayerSignals, signals.Name)
	assert.Len(t, signals.Shapes, len(s.signals))
	assert.InDelta(t, 0.5, signals.Opacity, 1e-12)

	assert.Equal(t, LayerStreaks, streaks.Name)
	assert.Len(t, streaks.Shapes, 30)
	assert.Equal(t, renderer.BlendAdditive, streaks.Blend)
	assert.Equal(t, renderer.ShapeQuad, streaks.Shapes[0].Kind)
	assert.Equal(t, float32(StreakWidth), streaks.Shapes[0].Width)
	assert.Equal(t, s.streaks[0].Height, streaks.Shapes[0].Height)
	assert.InDelta(t, 0.35, streaks.Opacity, 1e-12)

	// The snapshot does not follow later ticks.
	x := streaks.Shapes[0].Center.X
	s.Tick()
	assert.Equal(t, x, streaks.Shapes[0].Center.X)
}
