package backdrop

import (
	"math"
	"slices"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// Trace is an immutable polyline with precomputed segment lengths.
type Trace struct {
	points  []common.Vec3
	lengths []float64
	total   float64
}

// NewTrace builds a Trace through pts. The points are copied.
//
// Parameters:
//   - pts: the trace vertices, at least one
//
// Returns:
//   - *Trace: the trace
func NewTrace(pts []common.Vec3) *Trace {
	t := &Trace{
		points:  slices.Clone(pts),
		lengths: make([]float64, max(len(pts)-1, 0)),
	}
	for i := range t.lengths {
		t.lengths[i] = pts[i].DistanceTo(pts[i+1])
		t.total += t.lengths[i]
	}
	return t
}

// Points returns a copy of the trace vertices.
func (t *Trace) Points() []common.Vec3 {
	return slices.Clone(t.points)
}

// Len returns the number of vertices.
func (t *Trace) Len() int {
	return len(t.points)
}

// Length returns the total arc length.
func (t *Trace) Length() float64 {
	return t.total
}

// PointAt returns the position at the given fraction of the arc length.
// Progress wraps into [0, 1), so 1 maps to the first point. On a vertex shared by two segments the later segment
// is used, zero-length segments are skipped, and a trace with no length always returns its first point.
//
// Parameters:
//   - progress: the fraction of the arc length
//
// Returns:
//   - common.Vec3: the interpolated position
func (t *Trace) PointAt(progress float64) common.Vec3 {
	if len(t.points) == 0 {
		return common.Vec3{}
	}
	if t.total == 0 || math.IsNaN(progress) || math.IsInf(progress, 0) {
		return t.points[0]
	}
	progress -= math.Floor(progress)
	target := progress * t.total

	acc := 0.0
	for i, l := range t.lengths {
		if l == 0 {
			continue
		}
		if target < acc+l {
			return common.LerpVec3(t.points[i], t.points[i+1], (target-acc)/l)
		}
		acc += l
	}
	return t.points[len(t.points)-1]
}
