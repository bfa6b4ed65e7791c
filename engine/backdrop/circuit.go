package backdrop

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// NodeKey is the grid coordinate of a circuit node.
type NodeKey struct {
	X, Y int
}

// nodeKeyOf maps a grid-aligned point to its NodeKey.
func nodeKeyOf(p common.Vec3) NodeKey {
	return NodeKey{X: int(math.Round(float64(p.X))), Y: int(math.Round(float64(p.Y)))}
}

// Position returns the world position of the node.
func (k NodeKey) Position() common.Vec3 {
	return common.Vec3{X: float32(k.X), Y: float32(k.Y)}
}

// circuit is the generated board: traces, the deduplicated node set in first-visit order, and the signals.
type circuit struct {
	traces  []*Trace
	nodes   []NodeKey
	signals []*Signal
}

// generateCircuit builds count random traces on the grid.
//
// Parameters:
//   - rng: the random source
//   - count: the number of traces
//
// Returns:
//   - circuit: the generated board
func generateCircuit(rng *rand.Rand, count int) circuit {
	c := circuit{traces: make([]*Trace, 0, count)}
	seen := make(map[NodeKey]struct{}, count*MaxSegments)
	visit := func(p common.Vec3) {
		k := nodeKeyOf(p)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		c.nodes = append(c.nodes, k)
	}

	for range count {
		pts := randomWalk(rng)
		for _, p := range pts {
			visit(p)
		}
		t := NewTrace(pts)
		c.traces = append(c.traces, t)

		if rng.Float64() > SignalProbability {
			c.signals = append(c.signals, newSignal(t, rng.Float64(), MinSignalSpeed+rng.Float64()*(MaxSignalSpeed-MinSignalSpeed)))
		}
	}
	return c
}

// randomWalk produces the points of one orthogonal walk starting on a random grid cell.
func randomWalk(rng *rand.Rand) []common.Vec3 {
	cur := common.Vec3{X: gridCoord(rng), Y: gridCoord(rng)}
	segments := MinSegments + rng.IntN(MaxSegments-MinSegments+1)

	pts := make([]common.Vec3, 0, segments+1)
	pts = append(pts, cur)
	for range segments {
		horizontal := rng.Float64() > 0.5
		positive := rng.Float64() > 0.5
		length := float64((MinSegmentCells + rng.IntN(MaxSegmentCells-MinSegmentCells+1)) * CellSize)
		if !positive {
			length = -length
		}
		if horizontal {
			cur.X = float32(common.Clamp(float64(cur.X)+length, -HalfGrid, HalfGrid))
		} else {
			cur.Y = float32(common.Clamp(float64(cur.Y)+length, -HalfGrid, HalfGrid))
		}
		pts = append(pts, cur)
	}
	return pts
}

func gridCoord(rng *rand.Rand) float32 {
	return float32(rng.IntN(GridSize)*CellSize - HalfGrid)
}
