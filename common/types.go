// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vec3 is a plain 3-component world-space vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied component-wise by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(float64(v.X)*float64(v.X) + float64(v.Y)*float64(v.Y) + float64(v.Z)*float64(v.Z))
}

// DistanceTo returns the Euclidean distance between v and o.
//
// Parameters:
//   - o: the other point
//
// Returns:
//   - float64: the distance between the two points
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}

// LerpVec3 linearly interpolates between a and b by t. t = 0 yields a and t = 1 yields b exactly.
//
// Parameters:
//   - a: the start point
//   - b: the end point
//   - t: the interpolation factor
//
// Returns:
//   - Vec3: the interpolated point
func LerpVec3(a, b Vec3, t float64) Vec3 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Vec3{
		X: float32(Lerp(float64(a.X), float64(b.X), t)),
		Y: float32(Lerp(float64(a.Y), float64(b.Y), t)),
		Z: float32(Lerp(float64(a.Z), float64(b.Z), t)),
	}
}

// Color is a straight (non-premultiplied) RGB colour with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ColorFromHex builds a Color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed colour, e.g. 0x00aaff
//
// Returns:
//   - Color: the unpacked colour
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255.0,
		G: float64((hex>>8)&0xff) / 255.0,
		B: float64(hex&0xff) / 255.0,
	}
}

// ParseColor parses a "#rrggbb" or "rrggbb" string into a Color.
//
// Parameters:
//   - s: the colour string
//
// Returns:
//   - Color: the parsed colour
//   - error: an error if the string is not a 6-digit hex colour
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Lerp linearly interpolates each channel between c and other by t.
// t = 0 yields c and t = 1 yields other exactly.
//
// Parameters:
//   - other: the target colour
//   - t: the interpolation factor in [0, 1]
//
// Returns:
//   - Color: the blended colour
func (c Color) Lerp(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return Color{
		R: Lerp(c.R, other.R, t),
		G: Lerp(c.G, other.G, t),
		B: Lerp(c.B, other.B, t),
	}
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	to8 := func(v float64) uint8 {
		return uint8(math.Round(Clamp(v, 0, 1) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}
