package geo

import "math"

// CircleSteps is the number of equal heading steps used to approximate a circle.
const CircleSteps = 36

// DestinationPoint returns the point reached by travelling distanceKm along
// a great circle from origin with the given initial heading in degrees
// (0 = north, clockwise).
func DestinationPoint(origin Point, headingDegrees, distanceKm float64) Point {
	d := distanceKm / EarthRadiusKm
	hdng := toRad(headingDegrees)
	oX := toRad(origin.Longitude)
	oY := toRad(origin.Latitude)

	y := math.Asin(math.Sin(oY)*math.Cos(d) + math.Cos(oY)*math.Sin(d)*math.Cos(hdng))
	x := oX + math.Atan2(math.Sin(hdng)*math.Sin(d)*math.Cos(oY), math.Cos(d)-math.Sin(oY)*math.Sin(y))

	return Point{Latitude: toDeg(y), Longitude: toDeg(x)}
}

// CirclePath approximates a circle as a closed ring of CircleSteps+1 points.
// The last point is an exact copy of the first.
func CirclePath(center Point, radiusMeters float64) []Point {
	points := make([]Point, 0, CircleSteps+1)
	for i := 0; i < CircleSteps; i++ {
		heading := float64(i) * 360 / CircleSteps
		points = append(points, DestinationPoint(center, heading, radiusMeters/1000))
	}
	return append(points, points[0])
}
