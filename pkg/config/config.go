// Package config defines the generation parameters consumed by the river
// pipeline and loads them from TOML parameter files.
//
// A parameter file maps 1:1 to [Parameters]:
//
//	seed = 42
//	nsegments = 10
//	canal = false
//	gp = 50
//	bpd = 20
//
//	[lengths]
//	low = 400
//	high = 2000
//
//	[radii]
//	low = 500
//	high = 2000
//
//	[angles]
//	low = 60
//	high = 80
//
// Unset seed and start_at_utm use the sentinel -1 ("disabled").
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nikpau/sr-gen/pkg/errors"
)

// SeedUnset is the sentinel seed value meaning "do not seed"; every run
// draws a fresh seed and is not reproducible.
const SeedUnset = -1

// UTMUnset is the sentinel start_at_utm value meaning "keep local
// coordinates anchored at the origin".
const UTMUnset = -1

// Range is a closed numeric interval [Low, High] that generation
// parameters are drawn from.
type Range struct {
	Low  float64 `toml:"low" json:"low"`
	High float64 `toml:"high" json:"high"`
}

// Valid reports whether the range is well-formed.
func (r Range) Valid() bool { return r.Low <= r.High }

// Parameters is the immutable configuration consumed by the mesh builder,
// the field generators and the exporters. The zero value is not usable;
// start from [Default] or a parameter file.
type Parameters struct {
	Seed       int64   `toml:"seed" json:"seed"`               // RNG seed, SeedUnset disables seeding
	NSegments  int     `toml:"nsegments" json:"nsegments"`     // total number of segments
	Canal      bool    `toml:"canal" json:"canal"`             // straight canal (radii/angles ignored)
	GP         int     `toml:"gp" json:"gp"`                   // grid points per cross-section
	BPD        float64 `toml:"bpd" json:"bpd"`                 // distance between grid points [m]
	Lengths    Range   `toml:"lengths" json:"lengths"`         // straight segment lengths [m]
	Radii      Range   `toml:"radii" json:"radii"`             // curve radii [m]
	Angles     Range   `toml:"angles" json:"angles"`           // curve angles [deg]
	MaxDepth   float64 `toml:"max_depth" json:"max_depth"`     // depth at the deepest point [m]
	MaxVel     float64 `toml:"max_vel" json:"max_vel"`         // maximum current velocity [m/s]
	Variance   float64 `toml:"variance" json:"variance"`       // variance scale for the depth process
	StartAtUTM int     `toml:"start_at_utm" json:"start_at_utm"` // UTM zone to translate the river into
	SavePath   string  `toml:"savepath" json:"savepath"`       // parent directory for generated runs
	Exporter   string  `toml:"exporter" json:"exporter"`       // exporter name ("csv", "ucd", "geojson", "mongo")
	Conforming bool    `toml:"conforming" json:"conforming"`   // boundary-constrained triangulation
}

// Default returns the parameter set used when no file is given, mirroring
// the reference configuration shipped with the original tool.
func Default() Parameters {
	return Parameters{
		Seed:       SeedUnset,
		NSegments:  10,
		Canal:      false,
		GP:         50,
		BPD:        20,
		Lengths:    Range{Low: 400, High: 2000},
		Radii:      Range{Low: 500, High: 2000},
		Angles:     Range{Low: 60, High: 80},
		MaxDepth:   10,
		MaxVel:     1,
		Variance:   2,
		StartAtUTM: UTMUnset,
		SavePath:   "gen",
		Exporter:   "csv",
	}
}

// Load reads a TOML parameter file and validates it. Values absent from
// the file keep their [Default] value.
func Load(path string) (Parameters, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, errors.Wrap(errors.ErrCodeFileNotFound, err, "parameter file %s", path)
		}
		return p, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, errors.Wrap(errors.ErrCodeInvalidParameter, err, "parse %s", path)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks every precondition the builder relies on. Violations
// are INVALID_PARAMETER or INVALID_RANGE errors; generation must not be
// attempted with an invalid parameter set.
func (p Parameters) Validate() error {
	if p.NSegments < 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "nsegments must be >= 1, got %d", p.NSegments)
	}
	if p.GP < 2 {
		return errors.New(errors.ErrCodeInvalidParameter, "gp must be >= 2, got %d", p.GP)
	}
	if p.BPD <= 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "bpd must be > 0, got %g", p.BPD)
	}
	for _, r := range []struct {
		name string
		rng  Range
	}{
		{"lengths", p.Lengths},
		{"radii", p.Radii},
		{"angles", p.Angles},
	} {
		if !r.rng.Valid() {
			return errors.New(errors.ErrCodeInvalidRange,
				"%s.low (%g) must not exceed %s.high (%g)", r.name, r.rng.Low, r.name, r.rng.High)
		}
	}
	if p.Radii.Low <= 0 && !p.Canal {
		return errors.New(errors.ErrCodeInvalidParameter, "radii must be positive, got low %g", p.Radii.Low)
	}
	if p.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "max_depth must be >= 0, got %g", p.MaxDepth)
	}
	if p.Variance < 0 {
		return errors.New(errors.ErrCodeInvalidParameter, "variance must be >= 0, got %g", p.Variance)
	}
	if p.StartAtUTM != UTMUnset && (p.StartAtUTM < 1 || p.StartAtUTM > 60) {
		return errors.New(errors.ErrCodeInvalidParameter, "start_at_utm must be in [1,60], got %d", p.StartAtUTM)
	}
	if p.SavePath != "" {
		if err := errors.ValidateSavePath(p.SavePath); err != nil {
			return err
		}
	}
	if p.Exporter != "" {
		if err := errors.ValidateExporterName(p.Exporter); err != nil {
			return err
		}
	}
	return nil
}

// Seeded reports whether a deterministic seed is configured.
func (p Parameters) Seeded() bool { return p.Seed != SeedUnset }
