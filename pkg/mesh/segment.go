// Package mesh implements the geometric segment-chaining engine: it
// produces straight and curved cross-sectional grids, attaches them
// seamlessly to one another, and assembles them into the continuous
// point mesh of a meandering river.
//
// # Model
//
// A river is a chain of segments. Each segment owns a rows × GP grid of
// points where rows run along-river and the GP columns span the river's
// width. The first segment starts at the origin; every later segment is
// anchored to the open end of its predecessor. Curved segments are
// generated as concentric arcs around a circle anchor and then reflected
// and rotated into place, which is the part of the algorithm that keeps
// unpredictable left/right turns free of discontinuities and mirrored
// geometry.
//
// Segment construction is strictly sequential: every segment depends on
// the previous segment's endpoints. The assembled [BaseSegment] owns the
// full river grid; the individual segments are transient.
package mesh

import (
	"fmt"

	"github.com/nikpau/sr-gen/pkg/geom"
)

// Kind discriminates the two segment variants.
type Kind int

// Segment kinds.
const (
	KindStraight Kind = iota
	KindCurved
)

// Segment is one contiguous straight or curved piece of the river grid.
// Angle is the outward heading at the segment's open end in radians,
// normalized to [-π, π]. Curvature is only meaningful for KindCurved.
type Segment struct {
	Kind      Kind
	Grid      geom.Grid
	Length    float64
	Angle     float64
	Curvature geom.Curvature
}

// String returns a one-line description used in the chain log.
func (s *Segment) String() string {
	if s.Kind == KindCurved {
		return fmt.Sprintf("curved(out_angle=%.2f°, curvature=%s, length=%.2f)",
			geom.RadToDeg(s.Angle), s.Curvature, s.Length)
	}
	return fmt.Sprintf("straight(in_angle=%.2f°, length=%.2f)",
		geom.RadToDeg(s.Angle), s.Length)
}

// Endpoints are the two points of a segment edge that a successor can
// attach to: Connected sits on the end joined to the previous segment,
// Open on the outward end.
type Endpoints struct {
	Connected geom.Point
	Open      geom.Point
}

// EndpointsFor selects the attachment column by curvature: a right turn
// reads the rightmost column, a left turn the leftmost. The connected
// point is taken from the first row, the open point from the last.
func (s *Segment) EndpointsFor(c geom.Curvature) Endpoints {
	col := 0
	if c == geom.Right {
		col = s.Grid.Cols() - 1
	}
	last := s.Grid.Rows() - 1
	return Endpoints{
		Connected: s.Grid[0][col],
		Open:      s.Grid[last][col],
	}
}

// BaseSegment is the concatenation of all segments of a chain: the full
// river grid, the cumulative length, and the textual per-segment log.
type BaseSegment struct {
	Grid   geom.Grid
	Length float64
	Log    []string
}

// Rows returns the along-river point count of the assembled mesh.
func (b *BaseSegment) Rows() int { return b.Grid.Rows() }

// Cols returns the cross-sectional point count of the assembled mesh.
func (b *BaseSegment) Cols() int { return b.Grid.Cols() }

// Translate shifts the whole mesh by (dx, dy). Used for the UTM zone
// offset after assembly.
func (b *BaseSegment) Translate(dx, dy float64) {
	b.Grid = b.Grid.Translate(dx, dy)
}
