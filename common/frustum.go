package common

import "math"

// Plane is the half-space n·p + d >= 0 with a unit normal n.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// distance returns the signed distance of p from the plane.
func (pl Plane) distance(p Vec3) float32 {
	return pl.Normal.X*p.X + pl.Normal.Y*p.Y + pl.Normal.Z*p.Z + pl.Distance
}

// Frustum holds the clip planes of a view-projection matrix, oriented inwards.
type Frustum struct {
	Planes [6]Plane
}

// ExtractFrustumFromMatrix derives the frustum planes from a column-major view-projection matrix
// by adding and subtracting the x, y and z clip rows from the w row (Gribb/Hartmann).
//
// Parameters:
//   - viewProj: 16 float32 values in column-major order
//
// Returns:
//   - Frustum: the frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	w := row(3)

	var f Frustum
	for axis := 0; axis < 3; axis++ {
		a := row(axis)
		for side := 0; side < 2; side++ {
			sign := float32(1 - 2*side)
			f.Planes[axis*2+side] = normalizedPlane(
				w[0]+sign*a[0],
				w[1]+sign*a[1],
				w[2]+sign*a[2],
				w[3]+sign*a[3],
			)
		}
	}
	return f
}

func normalizedPlane(a, b, c, d float32) Plane {
	length := float32(math.Sqrt(float64(a*a + b*b + c*c)))
	if length == 0 {
		return Plane{Normal: Vec3{X: a, Y: b, Z: c}, Distance: d}
	}
	return Plane{Normal: Vec3{X: a / length, Y: b / length, Z: c / length}, Distance: d / length}
}

// ContainsSphere reports whether a sphere intersects or lies inside the frustum.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: false only if the sphere is fully outside at least one plane
func (f *Frustum) ContainsSphere(center Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].distance(center) < -radius {
			return false
		}
	}
	return true
}
