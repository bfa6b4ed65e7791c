package backdrop

import (
	"math/rand/v2"
	"slices"

	"github.com/Carmen-Shannon/oxy-backdrop/engine/renderer"
)

// Layer names in draw order.
const (
	LayerTraces  = "traces"
	LayerNodes   = "nodes"
	LayerSignals = "signals"
	LayerStreaks = "streaks"
)

// SceneState owns everything one mounted backdrop animates: the circuit, the streak field and the current style.
// It is not safe for concurrent use; the backdrop serialises access.
type SceneState struct {
	traces  []*Trace
	nodes   []NodeKey
	signals []*Signal
	streaks []Streak
	style   Style
	ticks   uint64
}

// NewSceneState generates a fresh scene.
//
// Parameters:
//   - rng: the random source for circuit and streak generation
//   - traceCount: the number of circuit traces
//   - streakCount: the number of streaks
//
// Returns:
//   - *SceneState: the scene, styled for scroll progress 0
func NewSceneState(rng *rand.Rand, traceCount, streakCount int) *SceneState {
	c := generateCircuit(rng, traceCount)
	return &SceneState{
		traces:  c.traces,
		nodes:   c.nodes,
		signals: c.signals,
		streaks: generateStreaks(rng, streakCount),
		style:   StyleFor(0),
	}
}

// Traces returns the circuit traces.
func (s *SceneState) Traces() []*Trace {
	return slices.Clone(s.traces)
}

// Nodes returns the deduplicated node coordinates in first-visit order.
func (s *SceneState) Nodes() []NodeKey {
	return slices.Clone(s.nodes)
}

// Signals returns the signals.
func (s *SceneState) Signals() []*Signal {
	return slices.Clone(s.signals)
}

// Streaks returns a copy of the streak field.
func (s *SceneState) Streaks() []Streak {
	return slices.Clone(s.streaks)
}

// Style returns the current style.
func (s *SceneState) Style() Style {
	return s.style
}

// Ticks returns how many times the scene has advanced.
func (s *SceneState) Ticks() uint64 {
	return s.ticks
}

// ApplyStyle replaces the current style.
func (s *SceneState) ApplyStyle(style Style) {
	s.style = style
}

// Tick advances every signal and streak by one frame.
func (s *SceneState) Tick() {
	for _, sig := range s.signals {
		sig.advance()
	}
	for i := range s.streaks {
		s.streaks[i].advance()
	}
	s.ticks++
}

// DrawList snapshots the scene into a renderer.DrawList. The result shares no mutable memory with the scene.
//
// Returns:
//   - *renderer.DrawList: the frame contents, traces first and streaks last
func (s *SceneState) DrawList() *renderer.DrawList {
	traces := make([]renderer.Shape, len(s.traces))
	for i, t := range s.traces {
		traces[i] = renderer.Polyline(t.Points())
	}

	nodes := make([]renderer.Shape, len(s.nodes))
	for i, n := range s.nodes {
		nodes[i] = renderer.Ring(n.Position(), NodeInnerRadius, NodeOuterRadius)
	}

	signals := make([]renderer.Shape, len(s.signals))
	for i, sig := range s.signals {
		signals[i] = renderer.Disc(sig.position, SignalRadius)
	}

	streaks := make([]renderer.Shape, len(s.streaks))
	for i, st := range s.streaks {
		streaks[i] = renderer.Quad(st.Position, StreakWidth, st.Height)
	}

	return &renderer.DrawList{Layers: []renderer.Layer{
		{Name: LayerTraces, Color: TraceColor, Opacity: s.style.TraceOpacity, Shapes: traces},
		{Name: LayerNodes, Color: NodeColor, Opacity: s.style.NodeOpacity, Shapes: nodes},
		{Name: LayerSignals, Color: SignalColor, Opacity: s.style.SignalOpacity, Shapes: signals},
		{Name: LayerStreaks, Color: StreakColor, Opacity: s.style.StreakOpacity, Blend: renderer.BlendAdditive, Shapes: streaks},
	}}
}
