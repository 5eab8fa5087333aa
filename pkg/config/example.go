package config

import (
	"os"

	"github.com/nikpau/sr-gen/pkg/errors"
)

// exampleFile is the commented parameter file written by `srgen config init`.
const exampleFile = `# srgen parameter file
#
# Seed for the random number generator. -1 leaves the generator unseeded,
# so every run produces a different river.
seed = 42

# Total number of segments. Segments alternate curved/straight after the
# initial straight segment.
nsegments = 10

# Generate a straight canal instead of a meandering river. Radii and
# angles are ignored and every segment uses lengths.low.
canal = false

# Grid points per cross-section (river width = (gp-1) * bpd).
gp = 50

# Distance between grid points [m].
bpd = 20

# River depth at the deepest point [m].
max_depth = 10

# Maximum current velocity [m/s].
max_vel = 1

# Variance scale for the stochastic depth process.
variance = 2

# UTM zone (1-60) to translate the river into; -1 keeps local coordinates.
start_at_utm = -1

# Parent directory for generated runs. Each run writes into a fresh
# subdirectory named by a random hex string.
savepath = "gen"

# Exporter: "csv", "ucd", "geojson" or "mongo".
exporter = "csv"

# Use boundary-constrained triangulation instead of the regular-grid split.
conforming = false

# Straight segment lengths [m].
[lengths]
low = 400
high = 2000

# Curve radii [m].
[radii]
low = 500
high = 2000

# Curve angles [deg].
[angles]
low = 60
high = 80
`

// WriteExample writes the commented example parameter file to path.
// It refuses to overwrite an existing file.
func WriteExample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeInvalidPath, "%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(exampleFile), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
