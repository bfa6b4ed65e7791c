package renderer

import "github.com/Carmen-Shannon/oxy-backdrop/common"

// BlendMode selects how a layer is composited onto the frame.
type BlendMode int

const (
	// BlendNormal draws each shape with source-over alpha blending at the layer opacity.
	BlendNormal BlendMode = iota

	// BlendAdditive draws the layer into an offscreen group and composites it with a lightening blend.
	BlendAdditive
)

// ShapeKind identifies the primitive a Shape describes.
type ShapeKind int

const (
	// ShapePolyline is an open line strip through Points.
	ShapePolyline ShapeKind = iota

	// ShapeRing is a flat annulus facing the camera, centred on Center with InnerRadius and Radius.
	ShapeRing

	// ShapeDisc is a filled circle of Radius around Center, used for small spheres.
	ShapeDisc

	// ShapeQuad is a camera-facing rectangle of Width x Height centred on Center.
	ShapeQuad
)

// Shape is a single world-space primitive.
type Shape struct {
	Kind ShapeKind

	// Points holds the vertices of a polyline.
	Points []common.Vec3

	Center      common.Vec3
	Radius      float32
	InnerRadius float32
	Width       float32
	Height      float32
}

// Polyline builds a ShapePolyline through pts.
func Polyline(pts []common.Vec3) Shape {
	return Shape{Kind: ShapePolyline, Points: pts}
}

// Ring builds a ShapeRing.
func Ring(center common.Vec3, inner, outer float32) Shape {
	return Shape{Kind: ShapeRing, Center: center, InnerRadius: inner, Radius: outer}
}

// Disc builds a ShapeDisc.
func Disc(center common.Vec3, radius float32) Shape {
	return Shape{Kind: ShapeDisc, Center: center, Radius: radius}
}

// Quad builds a ShapeQuad.
func Quad(center common.Vec3, width, height float32) Shape {
	return Shape{Kind: ShapeQuad, Center: center, Width: width, Height: height}
}

// boundingRadius returns a sphere radius that encloses the shape around its centre.
func (s Shape) boundingRadius() float32 {
	switch s.Kind {
	case ShapeQuad:
		return float32(common.Vec3{X: s.Width / 2, Y: s.Height / 2}.Length())
	default:
		return s.Radius
	}
}

// Layer is a group of shapes sharing one material.
type Layer struct {
	Name      string
	Color     common.Color
	Opacity   float64
	Blend     BlendMode
	LineWidth float64
	Shapes    []Shape
}

// Visible reports whether the layer contributes anything to the frame.
func (l *Layer) Visible() bool {
	return l.Opacity > 0 && len(l.Shapes) > 0
}

// DrawList is the complete description of one frame, drawn back to front in layer order.
type DrawList struct {
	Layers []Layer
}

// ShapeCount returns the total number of shapes over all layers.
func (d *DrawList) ShapeCount() int {
	n := 0
	for i := range d.Layers {
		n += len(d.Layers[i].Shapes)
	}
	return n
}
