// Package geo holds coordinates, great-circle distance in feet and the
// location fallback used when the browser cannot provide a GPS reading.
package geo

import (
	"fmt"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const (
	feetPerMeter = 3.280839895

	// MeanEarthRadius is the IUGG mean radius in metres. orb's haversine
	// uses the equatorial radius, which overstates distances by about 0.1%.
	MeanEarthRadius = 6371008.8
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether p is the zero coordinate, which browsers send when
// geolocation is denied.
func (p Point) IsZero() bool { return p.Lat == 0 && p.Lon == 0 }

// Valid reports whether p lies within latitude/longitude bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Orb converts p to an orb point (lon, lat order).
func (p Point) Orb() orb.Point { return orb.Point{p.Lon, p.Lat} }

func (p Point) String() string { return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lon) }

// DistanceFeet returns the great-circle surface distance between a and b on
// a sphere of MeanEarthRadius.
func DistanceFeet(a, b Point) float64 {
	return orbgeo.DistanceHaversine(a.Orb(), b.Orb()) * (MeanEarthRadius / orb.EarthRadius) * feetPerMeter
}

// Par classifies a tee-to-basket distance in feet.
func Par(distanceFeet float64) int {
	switch {
	case distanceFeet < 250:
		return 3
	case distanceFeet < 475:
		return 4
	case distanceFeet < 675:
		return 5
	default:
		return 6
	}
}

// FallbackMessage is shown when the default location stands in for GPS.
const FallbackMessage = "Using default Flagstaff location (enable GPS for accuracy)."

// Locator resolves optional request-supplied readings against a default.
type Locator struct {
	Default Point
}

// Resolution is a resolved location and whether it came from the fallback.
type Resolution struct {
	Point    Point  `json:"point"`
	Fallback bool   `json:"fallback"`
	Message  string `json:"message,omitempty"`
}

// Resolve returns reading when it is usable, otherwise the default.
func (l Locator) Resolve(reading *Point) Resolution {
	if Usable(reading) {
		return Resolution{Point: *reading}
	}
	return Resolution{Point: l.Default, Fallback: true, Message: FallbackMessage}
}

// Usable reports whether a request-supplied reading can be used.
func Usable(reading *Point) bool {
	return reading != nil && !reading.IsZero() && reading.Valid()
}
