// Package triangulate turns the assembled river point grid into a
// triangle mesh. Two strategies exist: a regular-grid split that
// exploits the known row/column topology, and a boundary-constrained
// Delaunay triangulation for consumers that need the triangle set to
// conform strictly to the channel outline.
package triangulate

import (
	"github.com/nikpau/sr-gen/pkg/errors"
)

// Triangle references three mesh points by flattened row-major vertex
// index (index = row*cols + col, plus the chosen base).
type Triangle struct {
	A, B, C int
}

// Regular triangulates a rows × cols grid by splitting every cell into
// a lower triangle (i,j),(i,j+1),(i+1,j) and an upper triangle
// (i,j+1),(i+1,j),(i+1,j+1). All lower triangles precede all upper
// ones. base shifts every vertex index, so callers can request 0- or
// 1-indexed output depending on the target format.
//
// The result is guaranteed manifold and non-overlapping: exactly
// 2·(rows-1)·(cols-1) triangles with every index in bounds.
func Regular(rows, cols, base int) ([]Triangle, error) {
	if rows < 2 || cols < 2 {
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"regular triangulation needs at least a 2x2 grid, got %dx%d", rows, cols)
	}

	cells := (rows - 1) * (cols - 1)
	out := make([]Triangle, 0, 2*cells)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			out = append(out, Triangle{
				A: base + i*cols + j,
				B: base + i*cols + j + 1,
				C: base + (i+1)*cols + j,
			})
		}
	}
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			out = append(out, Triangle{
				A: base + i*cols + j + 1,
				B: base + (i+1)*cols + j,
				C: base + (i+1)*cols + j + 1,
			})
		}
	}
	return out, nil
}
