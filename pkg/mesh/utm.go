package mesh

import (
	"math"

	"github.com/nikpau/sr-gen/pkg/errors"
	"github.com/nikpau/sr-gen/pkg/geom"
)

// WGS84 ellipsoid and UTM projection constants.
const (
	wgs84A       = 6378137.0         // semi-major axis [m]
	wgs84F       = 1 / 298.257223563 // flattening
	utmScale     = 0.9996            // central meridian scale factor k0
	utmFalseEast = 500000.0          // false easting at the central meridian
)

// UTMZoneMidpoint returns the midpoint of a UTM zone (1-60) in that
// zone's own coordinate system, defined as the point on the central
// meridian at 45°N: easting is the false easting, northing the scaled
// meridian arc length. Translating the generated mesh there keeps the
// coordinates inside the magnitude range simulation tools expect for the
// zone without doing any real projection work.
func UTMZoneMidpoint(zone int) (geom.Point, error) {
	if zone < 1 || zone > 60 {
		return geom.Point{}, errors.New(errors.ErrCodeInvalidParameter,
			"utm zone must be between 1 and 60, got %d", zone)
	}
	return geom.Point{
		X: utmFalseEast,
		Y: utmScale * meridianArc(math.Pi / 4),
	}, nil
}

// meridianArc returns the WGS84 meridian arc length from the equator to
// latitude phi (radians), using the standard series expansion in the
// squared eccentricity.
func meridianArc(phi float64) float64 {
	e2 := wgs84F * (2 - wgs84F)
	e4 := e2 * e2
	e6 := e4 * e2

	return wgs84A * ((1-e2/4-3*e4/64-5*e6/256)*phi -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*phi) +
		(15*e4/256+45*e6/1024)*math.Sin(4*phi) -
		(35*e6/3072)*math.Sin(6*phi))
}
