package mesh

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/nikpau/sr-gen/pkg/config"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// chainStream is the PCG stream constant for the chain RNG. The depth
// field derives its own generator with a different constant so the two
// never share state (see pkg/fields).
const chainStream = 0xdeadbeef

// NewRNG creates the chain generator for a seed.
func NewRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^chainStream))
}

// Seed resolves the configured seed: the sentinel value draws a fresh
// random seed, anything else is used verbatim so runs are reproducible.
func Seed(p config.Parameters) uint64 {
	if p.Seeded() {
		return uint64(p.Seed)
	}
	return rand.Uint64()
}

// BuildChain assembles a full river mesh from the given parameters.
//
// Segment 0 is always straight with a random length and a random initial
// heading in ±[5°, 80°]. Later segments alternate curved and straight
// unless the canal flag is set, in which case every segment is straight
// at the fixed minimum length and the heading never changes. All random
// draws come from rng; with a fixed seed the resulting grid is
// bit-identical across runs.
//
// The parameters must already be validated; geometric preconditions
// (degenerate lengths or radii) still surface as errors.
func BuildChain(p config.Parameters, rng *rand.Rand, logger *log.Logger) (*BaseSegment, error) {
	if logger == nil {
		logger = log.Default()
	}
	b := NewBuilder(p)

	length := randBetween(rng, p.Lengths)
	angle := randSign(rng) * geom.DegToRad(float64(randIntBetween(rng, 5, 80)))

	prev, err := b.Straight(geom.Point{}, length, angle)
	if err != nil {
		return nil, fmt.Errorf("segment 0: %w", err)
	}

	out := &BaseSegment{
		Grid:   prev.Grid.Clone(),
		Length: prev.Length,
		Log:    []string{fmt.Sprintf("segment 0: %s", prev)},
	}
	logger.Debug("built segment", "index", 0, "desc", prev.String())

	for i := 1; i < p.NSegments; i++ {
		var next *Segment

		if p.Canal {
			next, err = b.StraightFrom(prev, p.Lengths.Low, angle)
		} else {
			// Draw every value each iteration so the stream of random
			// numbers, and with it the whole chain, is reproducible
			// regardless of which segment kind consumes them.
			rndLen := randBetween(rng, p.Lengths)
			rndRadius := randBetween(rng, p.Radii)
			rndAngle := randSign(rng) * geom.DegToRad(randBetween(rng, p.Angles))

			if (i-1)%2 == 0 {
				next, err = b.Curved(prev, rndRadius, rndAngle)
				if err == nil {
					angle = geom.ClipToPi(angle + rndAngle)
				}
			} else {
				next, err = b.StraightFrom(prev, rndLen, angle)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}

		out.Grid = out.Grid.VStack(next.Grid)
		out.Length += next.Length
		out.Log = append(out.Log, fmt.Sprintf("segment %d: %s", i, next))
		logger.Debug("built segment", "index", i, "desc", next.String())
		prev = next
	}

	if p.StartAtUTM != config.UTMUnset {
		mid, err := UTMZoneMidpoint(p.StartAtUTM)
		if err != nil {
			return nil, err
		}
		out.Translate(mid.X, mid.Y)
		out.Log = append(out.Log, fmt.Sprintf("translated to UTM zone %d coordinates", p.StartAtUTM))
		logger.Debug("translated mesh", "zone", p.StartAtUTM, "easting", mid.X, "northing", mid.Y)
	}

	return out, nil
}

// randBetween draws an integer-valued float from the closed range,
// mirroring the reference generator which sampled whole meters/degrees.
func randBetween(rng *rand.Rand, r config.Range) float64 {
	return float64(randIntBetween(rng, int64(r.Low), int64(r.High)))
}

func randIntBetween(rng *rand.Rand, low, high int64) int64 {
	if high <= low {
		return low
	}
	return low + rng.Int64N(high-low+1)
}

// randSign draws -1 or +1 with equal probability.
func randSign(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
