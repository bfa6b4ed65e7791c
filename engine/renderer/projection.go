package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-backdrop/common"
)

// point2 is a screen-space position in pixels.
type point2 struct {
	X, Y float64
}

// screenShape is a Shape after projection. Polylines may be split into several strips
// where a vertex falls behind the camera.
type screenShape struct {
	kind   ShapeKind
	strips [][]point2
	center point2
	radius float64
	inner  float64
	width  float64
	height float64
}

// screenLayer is a Layer after projection and culling.
type screenLayer struct {
	src    *Layer
	shapes []screenShape
	culled int
}

// projector carries the per-frame camera state shared by all layer projections.
type projector struct {
	viewProj [16]float32
	frustum  common.Frustum
	width    int
	height   int
}

func (p *projector) project(v common.Vec3) (point2, bool) {
	x, y, ok := common.ProjectToScreen(p.viewProj[:], v, p.width, p.height)
	return point2{x, y}, ok
}

// projectLayer projects every shape of l into screen space, dropping shapes outside the view frustum.
//
// Parameters:
//   - l: the world-space layer
//
// Returns:
//   - screenLayer: the projected layer
func (p *projector) projectLayer(l *Layer) screenLayer {
	out := screenLayer{src: l, shapes: make([]screenShape, 0, len(l.Shapes))}
	for i := range l.Shapes {
		s := &l.Shapes[i]
		if s.Kind != ShapePolyline && !p.frustum.ContainsSphere(s.Center, s.boundingRadius()) {
			out.culled++
			continue
		}
		ss, ok := p.projectShape(s)
		if !ok {
			out.culled++
			continue
		}
		out.shapes = append(out.shapes, ss)
	}
	return out
}

func (p *projector) projectShape(s *Shape) (screenShape, bool) {
	switch s.Kind {
	case ShapePolyline:
		strips := p.projectPolyline(s.Points)
		return screenShape{kind: ShapePolyline, strips: strips}, len(strips) > 0

	case ShapeRing, ShapeDisc:
		c, ok := p.project(s.Center)
		if !ok {
			return screenShape{}, false
		}
		edge, ok := p.project(s.Center.Add(common.Vec3{X: s.Radius}))
		if !ok {
			return screenShape{}, false
		}
		r := math.Abs(edge.X - c.X)
		inner := 0.0
		if s.Radius > 0 {
			inner = r * (float64(s.InnerRadius) / float64(s.Radius))
		}
		return screenShape{kind: s.Kind, center: c, radius: r, inner: inner}, true

	case ShapeQuad:
		half := common.Vec3{X: s.Width / 2, Y: s.Height / 2}
		a, okA := p.project(s.Center.Sub(half))
		b, okB := p.project(s.Center.Add(half))
		if !okA || !okB {
			return screenShape{}, false
		}
		c := point2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
		return screenShape{kind: ShapeQuad, center: c, width: math.Abs(b.X - a.X), height: math.Abs(b.Y - a.Y)}, true
	}
	return screenShape{}, false
}

// projectPolyline projects each vertex and starts a new strip wherever a vertex cannot be projected.
// Strips with fewer than two vertices are dropped.
func (p *projector) projectPolyline(pts []common.Vec3) [][]point2 {
	var strips [][]point2
	cur := make([]point2, 0, len(pts))
	flush := func() {
		if len(cur) >= 2 {
			strips = append(strips, cur)
		}
		cur = make([]point2, 0, len(pts))
	}
	for _, v := range pts {
		sp, ok := p.project(v)
		if !ok {
			flush()
			continue
		}
		cur = append(cur, sp)
	}
	flush()
	return strips
}
