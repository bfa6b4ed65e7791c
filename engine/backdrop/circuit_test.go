package backdrop

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestCircuitStaysOnGrid(t *testing.T) {
	for seed := range uint64(20) {
		c := generateCircuit(testRand(seed), DefaultTraceCount)
		require.Len(t, c.traces, DefaultTraceCount)

		for _, tr := range c.traces {
			pts := tr.Points()
			assert.GreaterOrEqual(t, len(pts), MinSegments+1)
			assert.LessOrEqual(t, len(pts), MaxSegments+1)
			for i, p := range pts {
				assert.LessOrEqual(t, math.Abs(float64(p.X)), float64(HalfGrid))
				assert.LessOrEqual(t, math.Abs(float64(p.Y)), float64(HalfGrid))
				assert.Zero(t, p.Z)
				assert.Zero(t, math.Mod(float64(p.X), CellSize), "x on a grid line")
				assert.Zero(t, math.Mod(float64(p.Y), CellSize), "y on a grid line")
				if i > 0 {
					prev := pts[i-1]
					assert.True(t, prev.X == p.X || prev.Y == p.Y, "segments are axis aligned")
				}
			}
			start := pts[0]
			assert.Less(t, float64(start.X), float64(HalfGrid), "start cell never on the far edge")
			assert.Less(t, float64(start.Y), float64(HalfGrid))
		}
	}
}

func TestCircuitNodesAreDeduplicated(t *testing.T) {
	c := generateCircuit(testRand(7), DefaultTraceCount)

	set := make(map[NodeKey]struct{}, len(c.nodes))
	for _, n := range c.nodes {
		_, dup := set[n]
		assert.False(t, dup, "node %v listed twice", n)
		set[n] = struct{}{}
	}
	for _, tr := range c.traces {
		for _, p := range tr.Points() {
			_, ok := set[nodeKeyOf(p)]
			assert.True(t, ok, "point %v has a node", p)
		}
	}
}

func TestCircuitSignals(t *testing.T) {
	total := 0
	for seed := range uint64(20) {
		c := generateCircuit(testRand(seed), DefaultTraceCount)
		total += len(c.signals)
		for _, s := range c.signals {
			assert.GreaterOrEqual(t, s.Progress(), 0.0)
			assert.Less(t, s.Progress(), 1.0)
			assert.GreaterOrEqual(t, s.Speed(), MinSignalSpeed)
			assert.Less(t, s.Speed(), MaxSignalSpeed)
			assert.Contains(t, c.traces, s.Trace())
			assert.Equal(t, s.Trace().PointAt(s.Progress()), s.Position())
		}
	}
	// About half of the traces carry a signal.
	assert.InDelta(t, 20*DefaultTraceCount/2, total, 100)
}

func TestCircuitIsDeterministicPerSeed(t *testing.T) {
	a := generateCircuit(testRand(42), 10)
	b := generateCircuit(testRand(42), 10)
	require.Len(t, b.traces, len(a.traces))
	for i := range a.traces {
		assert.Equal(t, a.traces[i].Points(), b.traces[i].Points())
	}
	assert.Equal(t, a.nodes, b.nodes)
}

func TestEmptyCircuit(t *testing.T) {
	c := generateCircuit(testRand(1), 0)
	assert.Empty(t, c.traces)
	assert.Empty(t, c.nodes)
	assert.Empty(t, c.signals)
}
