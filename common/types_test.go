package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0x003366)
	assert.Equal(t, 0.0, c.R)
	assert.InDelta(t, 0x33/255.0, c.G, 1e-12)
	assert.InDelta(t, 0x66/255.0, c.B, 1e-12)
	assert.Equal(t, "#003366", c.Hex())
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#0a0a1a")
	require.NoError(t, err)
	assert.Equal(t, ColorFromHex(0x0a0a1a), c)

	_, err = ParseColor("#abc")
	assert.Error(t, err)
	_, err = ParseColor("zzzzzz")
	assert.Error(t, err)
}

func TestColorLerpEndpointsExact(t *testing.T) {
	a := ColorFromHex(0x0a0a1a)
	b := ColorFromHex(0x003366)

	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))

	mid := a.Lerp(b, 0.5)
	assert.InDelta(t, (a.R+b.R)/2, mid.R, 1e-12)
	assert.InDelta(t, (a.G+b.G)/2, mid.G, 1e-12)
	assert.InDelta(t, (a.B+b.B)/2, mid.B, 1e-12)
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{X: 0, Y: 0}
	b := Vec3{X: 30, Y: 40}
	assert.Equal(t, 50.0, a.DistanceTo(b))

	assert.Equal(t, a, LerpVec3(a, b, 0))
	assert.Equal(t, b, LerpVec3(a, b, 1))
	assert.Equal(t, Vec3{X: 15, Y: 20}, LerpVec3(a, b, 0.5))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
