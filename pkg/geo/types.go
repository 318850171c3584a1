// Package geo provides common geographic types and calculations.
// It centralizes location-based data structures and algorithms so that
// every overlay kind is projected, bounded and formatted the same way.
package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// EarthRadius is the mean radius of Earth according to WGS-84 in meters
const EarthRadius = 6371000.0

// EarthRadiusKm is EarthRadius expressed in kilometers.
const EarthRadiusKm = EarthRadius / 1000

// Point represents a geographic coordinate (latitude and longitude)
// in degrees.
//
// Example:
//
//	p := geo.Point{Latitude: 37.7749, Longitude: -122.4194}
//	dist := geo.HaversineDistance(p.Latitude, p.Longitude, 34.0522, -118.2437)
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// orb returns the planar orb representation (x = longitude, y = latitude).
func (p Point) orb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// URLValue formats the point as "lat,lng" rounded to six decimals, keeping
// only digits, '.', ',' and '-'.
func (p Point) URLValue() string {
	s := formatCoord(roundTo(p.Latitude, 6)) + "," + formatCoord(roundTo(p.Longitude, 6))
	return stripURLUnsafe(s)
}

// RawValue formats the point as "lat,lng" at full precision.
func (p Point) RawValue() string {
	return stripURLUnsafe(formatCoord(p.Latitude) + "," + formatCoord(p.Longitude))
}

func formatCoord(v float64) string {
	if v == 0 {
		// avoid "-0"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func stripURLUnsafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)
}

// Bounds represents a geographic bounding box with southwest and northeast
// corners. A box whose southwest longitude is greater than its northeast
// longitude spans the antimeridian.
type Bounds struct {
	SouthWest Point `json:"southwest"`
	NorthEast Point `json:"northeast"`
}

// BoundsOf returns the smallest non-wrapping box containing a and b.
func BoundsOf(a, b Point) Bounds {
	bound := a.orb().Bound().Extend(b.orb())
	return Bounds{
		SouthWest: Point{Latitude: bound.Min.Y(), Longitude: bound.Min.X()},
		NorthEast: Point{Latitude: bound.Max.Y(), Longitude: bound.Max.X()},
	}
}

// CrossesAntimeridian reports whether the box wraps around longitude 180.
func (b Bounds) CrossesAntimeridian() bool {
	return b.SouthWest.Longitude > b.NorthEast.Longitude
}

// parts splits the box into one or two planar bounds.
func (b Bounds) parts() []orb.Bound {
	sw, ne := b.SouthWest, b.NorthEast
	if !b.CrossesAntimeridian() {
		return []orb.Bound{{Min: sw.orb(), Max: ne.orb()}}
	}
	return []orb.Bound{
		{Min: orb.Point{sw.Longitude, sw.Latitude}, Max: orb.Point{180, ne.Latitude}},
		{Min: orb.Point{-180, sw.Latitude}, Max: orb.Point{ne.Longitude, ne.Latitude}},
	}
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	for _, part := range b.parts() {
		if part.Contains(p.orb()) {
			return true
		}
	}
	return false
}

// Intersects reports whether the two boxes share at least one point.
func (b Bounds) Intersects(other Bounds) bool {
	for _, mine := range b.parts() {
		for _, theirs := range other.parts() {
			if mine.Intersects(theirs) {
				return true
			}
		}
	}
	return false
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Point {
	lat := (b.SouthWest.Latitude + b.NorthEast.Latitude) / 2
	lng := (b.SouthWest.Longitude + b.NorthEast.Longitude) / 2
	if b.CrossesAntimeridian() {
		lng += 180
		if lng > 180 {
			lng -= 360
		}
	}
	return Point{Latitude: lat, Longitude: lng}
}

// HaversineDistance calculates the great-circle distance between two points
// on the Earth's surface given their latitude and longitude in degrees.
// The result is returned in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)

	dlat := lat2Rad - lat1Rad
	dlon := toRad(lon2 - lon1)
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadius * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
