package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewProjFor(t *testing.T, aspect float32) [16]float32 {
	t.Helper()
	var view, proj, vp [16]float32
	LookAt(view[:], 0, 0, 150, 0, 0, 0, 0, 1, 0)
	Perspective(proj[:], float32(75*math.Pi/180), aspect, 0.1, 1000)
	Mul4(vp[:], proj[:], view[:])
	return vp
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestProjectToScreenCentersOrigin(t *testing.T) {
	vp := viewProjFor(t, 16.0/9.0)

	sx, sy, ok := ProjectToScreen(vp[:], Vec3{}, 1600, 900)
	require.True(t, ok)
	assert.InDelta(t, 800, sx, 1e-3)
	assert.InDelta(t, 450, sy, 1e-3)
}

func TestProjectToScreenAxes(t *testing.T) {
	vp := viewProjFor(t, 1)

	rx, _, ok := ProjectToScreen(vp[:], Vec3{X: 10}, 800, 800)
	require.True(t, ok)
	assert.Greater(t, rx, 400.0, "positive x maps right of center")

	_, uy, ok := ProjectToScreen(vp[:], Vec3{Y: 10}, 800, 800)
	require.True(t, ok)
	assert.Less(t, uy, 400.0, "positive y maps above center")
}

func TestProjectToScreenBehindCamera(t *testing.T) {
	vp := viewProjFor(t, 1)

	_, _, ok := ProjectToScreen(vp[:], Vec3{Z: 200}, 800, 800)
	assert.False(t, ok)
}

func TestFrustumContainsSphere(t *testing.T) {
	vp := viewProjFor(t, 1)
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.ContainsSphere(Vec3{}, 1))
	assert.False(t, f.ContainsSphere(Vec3{X: 5000}, 1))
	assert.False(t, f.ContainsSphere(Vec3{Z: -5000}, 1))
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
	assert.Equal(t, 5.0, Lerp(0, 10, 0.5))
}

func TestFrustumPlanesAreUnitAndInward(t *testing.T) {
	vp := viewProjFor(t, 1)
	f := ExtractFrustumFromMatrix(vp[:])

	for i, pl := range f.Planes {
		n := pl.Normal
		assert.InDelta(t, 1, math.Sqrt(float64(n.X*n.X+n.Y*n.Y+n.Z*n.Z)), 1e-5, "plane %d", i)
		assert.Greater(t, pl.distance(Vec3{}), float32(0), "origin is inside plane %d", i)
	}
	assert.Greater(t, f.Planes[0].Normal.X, float32(0), "left plane faces +x")
	assert.Less(t, f.Planes[5].Normal.Z, float32(0), "far plane faces the eye")
}
