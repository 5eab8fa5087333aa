package fields

import (
	"math"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// Current holds the x and y velocity components, each a rows × cols
// field matching the mesh shape.
type Current struct {
	X Field
	Y Field
}

// Synthesize produces the current profile for a mesh of the given
// shape. Velocities vary only along-river and are constant across each
// cross-section: vx follows a sine over [-MAX_VEL, MAX_VEL], vy ramps
// linearly from 0 down to -MAX_VEL.
func Synthesize(rows, cols int, p config.Parameters) Current {
	vx := geom.Linspace(-p.MaxVel, p.MaxVel, rows)
	vy := geom.Linspace(0, p.MaxVel, rows)

	cur := Current{
		X: make(Field, rows),
		Y: make(Field, rows),
	}
	for i := 0; i < rows; i++ {
		xrow := make([]float64, cols)
		yrow := make([]float64, cols)
		x, y := math.Sin(vx[i]), -vy[i]
		for j := 0; j < cols; j++ {
			xrow[j] = x
			yrow[j] = y
		}
		cur.X[i] = xrow
		cur.Y[i] = yrow
	}
	return cur
}
