// Package geom provides the planar geometry primitives used by the river
// generator: points, row/column point grids, and the transform operations
// (rotation, reflection, axis flips) that the segment builder composes to
// chain grids together.
//
// Conventions:
//   - Rows run along-river, columns run across-river.
//   - Angles are radians, normalized to [-π, π].
//   - A positive heading rotates the river clockwise on the plane, so grid
//     rotation helpers take counter-clockwise-positive angles and callers
//     negate as needed.
package geom

import "math"

// Point is an immutable planar coordinate.
type Point struct {
	X float64
	Y float64
}

// Curvature is the turn direction of a curved segment.
type Curvature int

// Turn directions. The sign convention follows the rotation request: a
// positive rotation curves right, a negative one curves left.
const (
	Left Curvature = iota
	Right
)

// String returns "left" or "right".
func (c Curvature) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// Linspace returns n evenly spaced values from a to b, inclusive of both
// endpoints. For n == 1 it returns just a. The segment builder depends on
// these exact semantics (spacing (b-a)/(n-1)), so do not replace this with
// a half-open variant.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = a
		return out
	}
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// ClipToPi normalizes an angle to the range [-π, π).
func ClipToPi(angle float64) float64 {
	// math.Mod keeps the dividend's sign, so shift negative remainders
	// up one period before recentering.
	m := math.Mod(angle+math.Pi, 2*math.Pi)
	if m < 0 {
		m += 2 * math.Pi
	}
	return m - math.Pi
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
