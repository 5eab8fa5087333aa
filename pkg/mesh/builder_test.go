package mesh

import (
	"math"
	"testing"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/geom"
)

func testParams() config.Parameters {
	p := config.Default()
	p.GP = 4
	p.BPD = 20
	return p
}

func TestStraightSegmentShape(t *testing.T) {
	b := NewBuilder(testParams())

	seg, err := b.Straight(geom.Point{}, 400, 0)
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}

	// 400/20 = 20 sample rows, minus the dropped attachment row.
	if seg.Grid.Rows() != 19 {
		t.Errorf("rows = %d, want 19", seg.Grid.Rows())
	}
	if seg.Grid.Cols() != 4 {
		t.Errorf("cols = %d, want 4", seg.Grid.Cols())
	}
	if seg.Kind != KindStraight {
		t.Error("kind should be straight")
	}
	if seg.Length != 400 || seg.Angle != 0 {
		t.Errorf("length/angle = %v/%v", seg.Length, seg.Angle)
	}

	// With zero heading the grid is axis-aligned: columns spaced BPD
	// along x, rows marching up y.
	if got := seg.Grid[0][1].X - seg.Grid[0][0].X; math.Abs(got-20) > 1e-9 {
		t.Errorf("column spacing = %v, want 20", got)
	}
	if seg.Grid[1][0].Y <= seg.Grid[0][0].Y {
		t.Error("rows should advance along y for zero heading")
	}
}

func TestStraightSegmentRotation(t *testing.T) {
	b := NewBuilder(testParams())
	angle := geom.DegToRad(30)

	seg, err := b.Straight(geom.Point{}, 400, angle)
	if err != nil {
		t.Fatalf("Straight: %v", err)
	}

	// Positive headings rotate the river clockwise, so the along-river
	// direction tilts toward +x.
	dir := math.Atan2(seg.Grid[1][0].Y-seg.Grid[0][0].Y, seg.Grid[1][0].X-seg.Grid[0][0].X)
	want := math.Pi/2 - angle
	if math.Abs(dir-want) > 1e-9 {
		t.Errorf("along-river direction = %v rad, want %v", dir, want)
	}
}

func TestStraightSegmentDegenerate(t *testing.T) {
	b := NewBuilder(testParams())
	if _, err := b.Straight(geom.Point{}, 30, 0); !errors.Is(err, errors.ErrCodeInvalidParameter) {
		t.Errorf("short segment should fail with INVALID_PARAMETER, got %v", err)
	}
}

func TestCurvedSegmentZeroRotation(t *testing.T) {
	b := NewBuilder(testParams())
	prev, _ := b.Straight(geom.Point{}, 400, 0.3)

	_, err := b.Curved(prev, 1000, 0)
	if !errors.Is(err, errors.ErrCodeZeroRotation) {
		t.Errorf("zero rotation must fail with ZERO_ROTATION, got %v", err)
	}
}

func TestCurvedSegmentBadRadius(t *testing.T) {
	b := NewBuilder(testParams())
	prev, _ := b.Straight(geom.Point{}, 400, 0.3)

	for _, radius := range []float64{0, -100} {
		if _, err := b.Curved(prev, radius, 0.5); !errors.Is(err, errors.ErrCodeInvalidParameter) {
			t.Errorf("radius %v should fail with INVALID_PARAMETER, got %v", radius, err)
		}
	}
}

func TestCurvedSegmentShapeAndHeading(t *testing.T) {
	b := NewBuilder(testParams())
	prev, _ := b.Straight(geom.Point{}, 400, geom.DegToRad(20))

	rot := geom.DegToRad(30)
	seg, err := b.Curved(prev, 1000, rot)
	if err != nil {
		t.Fatalf("Curved: %v", err)
	}

	// floor(1000 * rot / 20) arc points, minus the two trimmed rows.
	wantRows := int(math.Floor(1000*rot/20)) - 2
	if seg.Grid.Rows() != wantRows {
		t.Errorf("rows = %d, want %d", seg.Grid.Rows(), wantRows)
	}
	if seg.Grid.Cols() != 4 {
		t.Errorf("cols = %d, want 4", seg.Grid.Cols())
	}
	if seg.Kind != KindCurved || seg.Curvature != geom.Right {
		t.Errorf("kind/curvature = %v/%v", seg.Kind, seg.Curvature)
	}
	if want := geom.ClipToPi(prev.Angle + rot); math.Abs(seg.Angle-want) > 1e-12 {
		t.Errorf("out heading = %v, want %v", seg.Angle, want)
	}
	if want := 1000 + 2*20*rot; math.Abs(seg.Length-want) > 1e-9 {
		t.Errorf("arc length = %v, want %v", seg.Length, want)
	}

	left, err2 := b.Curved(prev, 1000, -rot)
	if err2 != nil {
		t.Fatalf("Curved left: %v", err2)
	}
	if left.Curvature != geom.Left {
		t.Error("negative rotation should curve left")
	}
}

// rowMatches reports whether two cross-section rows coincide pointwise
// within tol. Column order must agree: the attach table's flips exist
// to keep bank order consistent, so a mirrored row is a defect, not a
// match.
func rowMatches(a, b []geom.Point, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for j := range a {
		if geom.Dist(a[j], b[j]) > tol {
			return false
		}
	}
	return true
}

// TestAttachContinuity verifies the core invariant of the attach-and-
// align table: the untrimmed arc grid's first row coincides with the
// previous segment's open cross-section for every combination of heading
// sign and turn direction.
func TestAttachContinuity(t *testing.T) {
	p := testParams()
	b := NewBuilder(p)

	cases := []struct {
		name    string
		heading float64 // heading of the previous straight segment
		rot     float64 // requested arc rotation
	}{
		{"positive heading right turn", geom.DegToRad(25), geom.DegToRad(40)},
		{"positive heading left turn", geom.DegToRad(25), geom.DegToRad(-40)},
		{"negative heading right turn", geom.DegToRad(-25), geom.DegToRad(40)},
		{"negative heading left turn", geom.DegToRad(-25), geom.DegToRad(-40)},
	}

	for _, tc := range cases {
		prev, err := b.Straight(geom.Point{}, 600, tc.heading)
		if err != nil {
			t.Fatalf("%s: straight: %v", tc.name, err)
		}

		curvature := geom.Left
		if tc.rot > 0 {
			curvature = geom.Right
		}
		ep := prev.EndpointsFor(curvature)
		anchor := b.anchor(ep.Connected, ep.Open, 800, prev.Angle, curvature)

		// Rebuild the raw arc exactly as Curved does, but keep the
		// overlap rows to compare against the previous segment.
		n := int(math.Abs(math.Floor(800 * tc.rot / p.BPD)))
		ts := geom.Linspace(0, math.Abs(tc.rot), n)
		rings := make(geom.Grid, p.GP)
		for i := 0; i < p.GP; i++ {
			r := 800 + float64(i)*p.BPD
			ring := make([]geom.Point, n)
			for k, tv := range ts {
				sin, cos := math.Sincos(tv)
				ring[k] = geom.Point{X: anchor.X + r*cos, Y: anchor.Y + r*sin}
			}
			rings[i] = ring
		}
		aligned := attachAndAlign(rings.Transpose(), anchor, prev.Angle, tc.rot, curvature)

		prevOpen := prev.Grid[prev.Grid.Rows()-1]
		if !rowMatches(aligned[0], prevOpen, 1e-6) && !rowMatches(aligned[aligned.Rows()-1], prevOpen, 1e-6) {
			t.Errorf("%s: arc does not continue the previous open edge\narc first row: %v\nprev open row: %v",
				tc.name, aligned[0], prevOpen)
		}
	}
}

// TestCurvedAttachAfterHeadingWrap chains curves whose running heading
// crosses -π: a straight at -1.3 rad followed by left turns of 2.2 and
// 1.4 rad accumulates to -4.9 raw, so the stored heading must re-enter
// [-π, π) before the next anchor is solved. A heading left
// un-normalized puts the circle anchor on the wrong side and the next
// segment detaches from the chain by hundreds of meters.
func TestCurvedAttachAfterHeadingWrap(t *testing.T) {
	p := testParams()
	b := NewBuilder(p)

	prev, err := b.Straight(geom.Point{}, 600, -1.3)
	if err != nil {
		t.Fatalf("straight: %v", err)
	}

	steps := []struct {
		name string
		rot  float64
	}{
		{"first left turn", -2.2},
		{"second left turn", -1.4},
		{"right turn after the wrap", 1.0},
	}
	for _, st := range steps {
		next, err := b.Curved(prev, 800, st.rot)
		if err != nil {
			t.Fatalf("%s: %v", st.name, err)
		}
		if next.Angle < -math.Pi || next.Angle >= math.Pi {
			t.Errorf("%s: stored heading %v outside [-π, π)", st.name, next.Angle)
		}

		// The first kept row sits one arc step beyond the predecessor's
		// open edge, column for column.
		open := prev.Grid[prev.Grid.Rows()-1]
		for j, pt := range next.Grid[0] {
			if d := geom.Dist(pt, open[j]); d > 2*p.BPD {
				t.Fatalf("%s: column %d sits %.2f m from the previous open edge",
					st.name, j, d)
			}
		}
		prev = next
	}
}

func TestAnchorVerticalLine(t *testing.T) {
	b := NewBuilder(testParams())
	// Connected and open endpoint share x: the anchor offsets purely
	// along x by ±radius.
	con := geom.Point{X: 60, Y: 0}
	open := geom.Point{X: 60, Y: 500}

	got := b.anchor(con, open, 800, 0.4, geom.Right)
	if got.Y != open.Y || math.Abs(got.X-open.X) != 800 {
		t.Errorf("vertical-line anchor = %+v", got)
	}
}

func TestAnchorHorizontalLine(t *testing.T) {
	b := NewBuilder(testParams())
	con := geom.Point{X: 0, Y: 100}
	open := geom.Point{X: 500, Y: 100}

	// heading > 0 & left curvature adds the radius.
	got := b.anchor(con, open, 800, 0.4, geom.Left)
	if got.X != open.X || got.Y != open.Y+800 {
		t.Errorf("horizontal-line anchor (left) = %+v", got)
	}

	// heading > 0 & right curvature subtracts it.
	got = b.anchor(con, open, 800, 0.4, geom.Right)
	if got.X != open.X || got.Y != open.Y-800 {
		t.Errorf("horizontal-line anchor (right) = %+v", got)
	}
}

func TestAnchorDistance(t *testing.T) {
	b := NewBuilder(testParams())
	// In the general case the anchor must sit exactly radius away from
	// the open endpoint.
	con := geom.Point{X: 10, Y: 20}
	open := geom.Point{X: 150, Y: 480}

	for _, c := range []geom.Curvature{geom.Left, geom.Right} {
		for _, heading := range []float64{0.3, -0.3, 2.0, -2.0} {
			a := b.anchor(con, open, 750, heading, c)
			if d := geom.Dist(a, open); math.Abs(d-750) > 1e-6 {
				t.Errorf("anchor dist (curv=%s, heading=%v) = %v, want 750", c, heading, d)
			}
		}
	}
}

func TestEndpointsFor(t *testing.T) {
	b := NewBuilder(testParams())
	seg, _ := b.Straight(geom.Point{}, 400, 0)

	right := seg.EndpointsFor(geom.Right)
	left := seg.EndpointsFor(geom.Left)

	if right.Connected != seg.Grid[0][3] || right.Open != seg.Grid[18][3] {
		t.Errorf("right endpoints = %+v", right)
	}
	if left.Connected != seg.Grid[0][0] || left.Open != seg.Grid[18][0] {
		t.Errorf("left endpoints = %+v", left)
	}
}
