// Package fields synthesizes the scalar and vector fields laid over a
// finished river mesh: the stochastic water-depth grid and the
// deterministic current-velocity grids. Both are pure functions of the
// mesh shape and the generation parameters, so they can run concurrently
// once the mesh is assembled.
package fields

import (
	"math"
	"math/rand/v2"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// depthStream is the PCG stream constant for the depth generator. It
// differs from the chain generator's constant so a single configured
// seed yields two independent deterministic streams.
const depthStream = 0x5eaf100d

// NewRNG creates the depth-field generator for a seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^depthStream))
}

// Field is a rows × cols grid of scalar samples.
type Field [][]float64

// Rows returns the along-river sample count.
func (f Field) Rows() int { return len(f) }

// Cols returns the cross-sectional sample count.
func (f Field) Cols() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// ar1 parameterizes a smoothed order-1 autoregressive sequence.
type ar1 struct {
	rho      float64 // autoregression coefficient
	sigma    float64 // noise gain
	variance float64 // noise standard deviation
	start    float64 // initial value and noise mean
	alpha    float64 // exponential smoothing factor
}

// sequence draws n values: raw[0] = start, raw[i] = rho·raw[i-1] +
// sigma·N(start, variance), then exponentially smoothed with alpha.
func (a ar1) sequence(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	raw := a.start
	out[0] = raw
	for i := 1; i < n; i++ {
		noise := a.start + a.variance*rng.NormFloat64()
		raw = a.rho*raw + a.sigma*noise
		out[i] = a.alpha*raw + (1-a.alpha)*out[i-1]
	}
	return out
}

// Depth synthesizes the water-depth grid for a mesh of the given row
// count. Two smoothed AR(1) control sequences vary the cross-sectional
// profile along the river: "steepness" scales the falloff, "location"
// shifts the deepest point off-center. The profile itself is a quartic
// falloff, flatter mid-channel and steeper at the banks than a Gaussian:
//
//	depth(x) = MAX_DEPTH · exp(-5e-5 · steepness · (x + location)⁴)
//
// sampled at GP positions in [-15, 15]. All values land in
// [0, MAX_DEPTH] because the exponent is never positive.
func Depth(rows int, p config.Parameters, rng *rand.Rand) Field {
	steepness := ar1{rho: 0.995, sigma: 0.005, variance: 10 * p.Variance, start: 2.5, alpha: 0.01}.sequence(rng, rows)
	location := ar1{rho: 0.99, sigma: 0.01, variance: 30 * p.Variance, start: 0, alpha: 0.05}.sequence(rng, rows)

	xs := geom.Linspace(-15, 15, p.GP)
	out := make(Field, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, p.GP)
		for j, x := range xs {
			d := x + location[i]
			d *= d
			row[j] = p.MaxDepth * math.Exp(-5e-5*steepness[i]*d*d)
		}
		out[i] = row
	}
	return out
}
