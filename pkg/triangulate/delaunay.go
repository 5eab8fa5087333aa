package triangulate

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// Boundary walks the closed outline of the river grid: the first
// cross-section, the outer (last-column) point of every interior
// cross-section, the last cross-section reversed, and the first-column
// points back up. The ring is closed by repeating the start point.
func Boundary(g geom.Grid) orb.Ring {
	rows, cols := g.Rows(), g.Cols()
	ring := make(orb.Ring, 0, 2*cols+2*(rows-2)+1)

	for j := 0; j < cols; j++ {
		ring = append(ring, orb.Point{g[0][j].X, g[0][j].Y})
	}
	for i := 1; i < rows-1; i++ {
		ring = append(ring, orb.Point{g[i][cols-1].X, g[i][cols-1].Y})
	}
	for j := cols - 1; j >= 0; j-- {
		ring = append(ring, orb.Point{g[rows-1][j].X, g[rows-1][j].Y})
	}
	for i := rows - 2; i >= 1; i-- {
		ring = append(ring, orb.Point{g[i][0].X, g[i][0].Y})
	}
	return append(ring, ring[0])
}

// Constrained computes a Delaunay triangulation of all grid points and
// keeps only the triangles whose centroid lies inside the channel
// outline from [Boundary]. Vertex indices are 0-based row-major; add a
// base downstream if the target format needs one.
func Constrained(g geom.Grid) ([]Triangle, error) {
	if g.Rows() < 2 || g.Cols() < 2 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"constrained triangulation needs at least a 2x2 grid, got %dx%d", g.Rows(), g.Cols())
	}

	points := g.Flatten()
	ring := Boundary(g)

	out := make([]Triangle, 0, 2*(g.Rows()-1)*(g.Cols()-1))
	for _, t := range delaunay(points) {
		a, b, c := points[t.A], points[t.B], points[t.C]
		centroid := orb.Point{(a.X + b.X + c.X) / 3, (a.Y + b.Y + c.Y) / 3}
		if planar.RingContains(ring, centroid) {
			out = append(out, t)
		}
	}
	return out, nil
}

// circumTri caches a triangle's circumcircle for the in-circle test.
type circumTri struct {
	a, b, c    int
	cx, cy, r2 float64
}

func newCircumTri(points []geom.Point, a, b, c int) circumTri {
	pa, pb, pc := points[a], points[b], points[c]
	d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
	if d == 0 {
		// Collinear vertices circumscribe nothing.
		return circumTri{a: a, b: b, c: c, r2: -1}
	}
	la := pa.X*pa.X + pa.Y*pa.Y
	lb := pb.X*pb.X + pb.Y*pb.Y
	lc := pc.X*pc.X + pc.Y*pc.Y
	cx := (la*(pb.Y-pc.Y) + lb*(pc.Y-pa.Y) + lc*(pa.Y-pb.Y)) / d
	cy := (la*(pc.X-pb.X) + lb*(pa.X-pc.X) + lc*(pb.X-pa.X)) / d
	dx, dy := pa.X-cx, pa.Y-cy
	return circumTri{a: a, b: b, c: c, cx: cx, cy: cy, r2: dx*dx + dy*dy}
}

func (t circumTri) contains(p geom.Point) bool {
	dx, dy := p.X-t.cx, p.Y-t.cy
	return dx*dx+dy*dy < t.r2
}

func (t circumTri) hasVertexAtLeast(n int) bool {
	return t.a >= n || t.b >= n || t.c >= n
}

type edge struct{ u, v int }

func newEdge(u, v int) edge {
	if u > v {
		u, v = v, u
	}
	return edge{u, v}
}

// delaunay runs an incremental Bowyer-Watson triangulation over the
// point set and returns 0-based index triples.
func delaunay(points []geom.Point) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	// Super-triangle comfortably enclosing the bounding box.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	work := append(append([]geom.Point{}, points...),
		geom.Point{X: midX - 20*span, Y: midY - span},
		geom.Point{X: midX + 20*span, Y: midY - span},
		geom.Point{X: midX, Y: midY + 20*span},
	)
	tris := []circumTri{newCircumTri(work, n, n+1, n+2)}

	for i := 0; i < n; i++ {
		p := work[i]

		// Cavity: every triangle whose circumcircle swallows p.
		bad := tris[:0:0]
		keep := tris[:0]
		for _, t := range tris {
			if t.contains(p) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}
		tris = keep

		// Edges on the cavity hull appear in exactly one bad triangle.
		// Walk them in insertion order so the output is reproducible.
		edges := make([]edge, 0, 3*len(bad))
		count := make(map[edge]int, 3*len(bad))
		for _, t := range bad {
			for _, e := range [3]edge{newEdge(t.a, t.b), newEdge(t.b, t.c), newEdge(t.c, t.a)} {
				edges = append(edges, e)
				count[e]++
			}
		}
		for _, e := range edges {
			if count[e] == 1 {
				tris = append(tris, newCircumTri(work, e.u, e.v, i))
			}
		}
	}

	out := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		if t.hasVertexAtLeast(n) {
			continue
		}
		out = append(out, Triangle{A: t.a, B: t.b, C: t.c})
	}
	return out
}
