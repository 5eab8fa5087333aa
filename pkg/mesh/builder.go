package mesh

import (
	"math"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// slopeTol is the absolute tolerance below which the line connecting two
// endpoints is treated as horizontal in anchor solving. Falling through
// to the general perpendicular-line formula near zero slope would blow
// up on 1/m.
const slopeTol = 1e-9

// Builder produces river segments from generation parameters. It holds
// no mutable state; the same builder can construct any number of chains.
type Builder struct {
	gp  int
	bpd float64
}

// NewBuilder creates a segment builder for the given parameters.
func NewBuilder(p config.Parameters) *Builder {
	return &Builder{gp: p.GP, bpd: p.BPD}
}

// Straight generates a straight segment of the given length anchored at
// start. The grid is built axis-aligned and then rotated by -angle about
// the start point; positive angles rotate the river's heading clockwise.
// The first row duplicates the attachment row of the predecessor and is
// dropped.
func (b *Builder) Straight(start geom.Point, length, angle float64) (*Segment, error) {
	rows := int(length / b.bpd)
	if rows < 2 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"straight segment of length %g yields %d rows at spacing %g (need >= 2)", length, rows, b.bpd)
	}

	xs := geom.Linspace(start.X, start.X+float64(b.gp-1)*b.bpd, b.gp)
	ys := geom.Linspace(start.Y, start.Y+length, rows)
	grid := geom.Meshgrid(xs, ys).RotateAbout(start, -angle)

	return &Segment{
		Kind:   KindStraight,
		Grid:   grid.Slice(1, grid.Rows()),
		Length: length,
		Angle:  angle,
	}, nil
}

// StraightFrom generates a straight segment attached to the open end of
// prev. The attachment point is always the leftmost column's open point,
// matching the straight grid's own leftmost column.
func (b *Builder) StraightFrom(prev *Segment, length, angle float64) (*Segment, error) {
	return b.Straight(prev.EndpointsFor(geom.Left).Open, length, angle)
}

// Curved generates a curved segment attached to prev, sweeping the given
// rotation (radians, positive = right turn) along a circle of the given
// radius. The zero-rotation case is a precondition violation: use
// [Builder.StraightFrom] instead.
func (b *Builder) Curved(prev *Segment, radius, rotation float64) (*Segment, error) {
	if rotation == 0 {
		return nil, errors.New(errors.ErrCodeZeroRotation,
			"curved segment requires a nonzero rotation; use a straight segment instead")
	}
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "curve radius must be > 0, got %g", radius)
	}

	curvature := geom.Left
	if rotation > 0 {
		curvature = geom.Right
	}

	ep := prev.EndpointsFor(curvature)
	anchor := b.anchor(ep.Connected, ep.Open, radius, prev.Angle, curvature)

	// Evenly spaced points along the arc subtending the rotation.
	n := int(math.Abs(math.Floor(radius * rotation / b.bpd)))
	if n < 3 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"arc of radius %g over %.4f rad yields %d points at spacing %g (need >= 3)",
			radius, rotation, n, b.bpd)
	}
	ts := geom.Linspace(0, math.Abs(rotation), n)

	// One ring per cross-sectional grid point, radius growing outward.
	rings := make(geom.Grid, b.gp)
	for i := 0; i < b.gp; i++ {
		r := radius + float64(i)*b.bpd
		ring := make([]geom.Point, n)
		for k, t := range ts {
			sin, cos := math.Sincos(t)
			ring[k] = geom.Point{X: anchor.X + r*cos, Y: anchor.Y + r*sin}
		}
		rings[i] = ring
	}

	// Arc position becomes the row axis, ring index the column axis,
	// matching the straight-segment convention.
	grid := rings.Transpose()
	grid = attachAndAlign(grid, anchor, prev.Angle, rotation, curvature)

	// First and last row both overlap neighboring segments.
	grid = grid.Slice(1, grid.Rows()-1)

	return &Segment{
		Kind:      KindCurved,
		Grid:      grid,
		Length:    radius + float64(b.gp)/2*b.bpd*rotation,
		Angle:     geom.ClipToPi(prev.Angle + rotation),
		Curvature: curvature,
	}, nil
}

// anchor computes the circle center for a curved segment: the point at
// distance radius from the open endpoint, on the perpendicular to the
// connected→open line, on the side determined by the previous heading's
// quadrant and the curvature.
//
// The vertical and horizontal connecting lines get their own closed-form
// branches; the general case intersects the perpendicular through the
// open endpoint with the circle of the given radius around it.
func (b *Builder) anchor(con, open geom.Point, radius, prevAngle float64, curvature geom.Curvature) geom.Point {
	s := anchorSwitch(prevAngle, curvature)

	// Vertical connecting line: offset purely along x.
	if open.X-con.X == 0 {
		return geom.Point{X: open.X + s*radius, Y: open.Y}
	}

	m := (open.Y - con.Y) / (open.X - con.X)

	// Horizontal connecting line: offset purely along y, sign by the
	// heading/curvature truth table.
	if math.Abs(m) <= slopeTol {
		if (prevAngle > 0 && curvature == geom.Left) || (prevAngle < 0 && curvature == geom.Right) {
			return geom.Point{X: open.X, Y: open.Y + radius}
		}
		return geom.Point{X: open.X, Y: open.Y - radius}
	}

	// General case: x on the perpendicular at distance radius from the
	// open endpoint, root selected by the quadrant sign.
	x := open.X + s*radius/math.Sqrt(1+1/(m*m))
	y := -(1/m)*x + open.Y + (1/m)*open.X
	return geom.Point{X: x, Y: y}
}

// anchorSwitch selects the root of the anchor circle equation: +1 for
// right curvature while the heading lies in (-π/2, π/2), flipped for
// left curvature or headings outside that range.
func anchorSwitch(angle float64, curvature geom.Curvature) float64 {
	cur := 1.0
	if curvature == geom.Left {
		cur = -1.0
	}
	if angle > -math.Pi/2 && angle < math.Pi/2 {
		return cur
	}
	return -cur
}

// attachAndAlign reflects and/or rotates a raw arc grid so its connected
// edge coincides with the previous segment's open edge. The transform is
// a four-case table over curvature × heading sign (the planar quadrant
// the heading falls into). The cases were validated against the chain
// continuity tests; do not simplify them into a single formula.
func attachAndAlign(g geom.Grid, anchor geom.Point, prevAngle, rotation float64, curvature geom.Curvature) geom.Grid {
	if curvature == geom.Right {
		if prevAngle > 0 { // quadrant I & IV
			return g.VerticalReflect(anchor).
				FlipColumns().
				RotateAbout(anchor, -prevAngle)
		}
		// quadrant II & III
		return g.VerticalReflect(anchor).
			HorizontalReflect(anchor).
			FlipBoth().
			RotateAbout(anchor, -(prevAngle + rotation))
	}
	if prevAngle > 0 { // quadrant I & IV
		return g.RotateAbout(anchor, -prevAngle)
	}
	// quadrant II & III
	return g.VerticalReflect(anchor).
		HorizontalReflect(anchor).
		RotateAbout(anchor, math.Pi-prevAngle)
}
