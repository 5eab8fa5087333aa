package geom

import "math"

// Grid is a rectangular rows × cols arrangement of points. Rows run
// along-river, columns across-river. All transform methods return a new
// grid and leave the receiver untouched; the builder chains several
// transforms per segment and relies on the inputs staying intact.
type Grid [][]Point

// NewGrid allocates a rows × cols grid of zero points.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for i := range g {
		g[i] = make([]Point, cols)
	}
	return g
}

// Meshgrid builds a grid from per-column x values and per-row y values,
// i.e. grid[i][j] = (xs[j], ys[i]).
func Meshgrid(xs, ys []float64) Grid {
	g := make(Grid, len(ys))
	for i, y := range ys {
		row := make([]Point, len(xs))
		for j, x := range xs {
			row[j] = Point{X: x, Y: y}
		}
		g[i] = row
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns, 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Point(nil), row...)
	}
	return out
}

// Slice returns the sub-grid of rows [from, to). Rows are copied so the
// result does not alias the receiver.
func (g Grid) Slice(from, to int) Grid {
	return g[from:to].Clone()
}

// VStack concatenates other below g.
func (g Grid) VStack(other Grid) Grid {
	out := make(Grid, 0, len(g)+len(other))
	out = append(out, g.Clone()...)
	out = append(out, other.Clone()...)
	return out
}

// RotateAbout rotates every point by rad radians around the anchor.
// Positive values rotate counter-clockwise.
func (g Grid) RotateAbout(anchor Point, rad float64) Grid {
	sin, cos := math.Sincos(rad)
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			dx, dy := p.X-anchor.X, p.Y-anchor.Y
			r[j] = Point{
				X: dx*cos - dy*sin + anchor.X,
				Y: dx*sin + dy*cos + anchor.Y,
			}
		}
		out[i] = r
	}
	return out
}

// VerticalReflect mirrors the grid about the vertical line x = anchor.X.
func (g Grid) VerticalReflect(anchor Point) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			r[j] = Point{X: 2*anchor.X - p.X, Y: p.Y}
		}
		out[i] = r
	}
	return out
}

// HorizontalReflect mirrors the grid about the horizontal line y = anchor.Y.
func (g Grid) HorizontalReflect(anchor Point) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			r[j] = Point{X: p.X, Y: 2*anchor.Y - p.Y}
		}
		out[i] = r
	}
	return out
}

// FlipColumns reverses the column order of every row.
func (g Grid) FlipColumns() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			r[len(row)-1-j] = p
		}
		out[i] = r
	}
	return out
}

// FlipBoth reverses both the row order and the column order.
func (g Grid) FlipBoth() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			r[len(row)-1-j] = p
		}
		out[len(g)-1-i] = r
	}
	return out
}

// Transpose swaps rows and columns.
func (g Grid) Transpose() Grid {
	if len(g) == 0 {
		return Grid{}
	}
	out := NewGrid(g.Cols(), g.Rows())
	for i, row := range g {
		for j, p := range row {
			out[j][i] = p
		}
	}
	return out
}

// Translate shifts every point by (dx, dy).
func (g Grid) Translate(dx, dy float64) Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		r := make([]Point, len(row))
		for j, p := range row {
			r[j] = Point{X: p.X + dx, Y: p.Y + dy}
		}
		out[i] = r
	}
	return out
}

// Flatten returns the points in row-major order.
func (g Grid) Flatten() []Point {
	out := make([]Point, 0, g.Rows()*g.Cols())
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}
