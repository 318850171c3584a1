// Package polyline implements the signed-delta polyline encoding consumed by
// the static map rendering service.
//
// Coordinates are scaled by 1e5 and truncated toward negative infinity before
// delta encoding. The remote renderer decodes paths bit for bit, so the
// truncation must not be replaced with rounding.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"math"

	"github.com/NERVsystems/staticsnap/pkg/geo"
)

// Precision is the fixed-point scale applied to every coordinate.
const Precision = 1e5

var (
	// ErrUnterminated is returned when the input ends inside a value.
	ErrUnterminated = errors.New("polyline: unexpected end of input")
	// ErrInvalidByte is returned for characters outside the encoding alphabet.
	ErrInvalidByte = errors.New("polyline: invalid character")
	// ErrOddCount is returned when a latitude has no matching longitude.
	ErrOddCount = errors.New("polyline: latitude without longitude")
)

// Encode encodes points into a polyline string.
func Encode(points []geo.Point) string {
	if len(points) == 0 {
		return ""
	}

	// 6 bytes per coordinate is typical
	result := make([]byte, 0, len(points)*12)

	prevLat := 0
	prevLng := 0
	for _, point := range points {
		lat := int(math.Floor(point.Latitude * Precision))
		lng := int(math.Floor(point.Longitude * Precision))

		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return string(result)
}

// appendSigned appends the encoding of a signed delta to buf.
func appendSigned(buf []byte, value int) []byte {
	s := value << 1
	if value < 0 {
		s = ^s
	}
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(buf, byte(s+63))
}

// Decode decodes a polyline string back into points. It is the reference
// decoder for Encode and reports malformed input instead of guessing.
func Decode(encoded string) ([]geo.Point, error) {
	if len(encoded) == 0 {
		return []geo.Point{}, nil
	}

	points := make([]geo.Point, 0, len(encoded)/4+1)

	index := 0
	lat := 0
	lng := 0
	for index < len(encoded) {
		deltaLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		if next >= len(encoded) {
			return nil, ErrOddCount
		}
		deltaLng, next, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next

		lat += deltaLat
		lng += deltaLng
		points = append(points, geo.Point{
			Latitude:  float64(lat) / Precision,
			Longitude: float64(lng) / Precision,
		})
	}

	return points, nil
}

// decodeSigned reads one value starting at index and returns it together
// with the index of the following value.
func decodeSigned(encoded string, index int) (int, int, error) {
	result := 0
	shift := 0
	for {
		if index >= len(encoded) {
			return 0, 0, ErrUnterminated
		}
		b := int(encoded[index]) - 63
		if b < 0 || b > 0x3f {
			return 0, 0, ErrInvalidByte
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	// undo the sign folding
	return (result >> 1) ^ (-(result & 1)), index, nil
}
