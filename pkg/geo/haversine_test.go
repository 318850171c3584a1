package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// Test cases with known distances
	tests := []struct {
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		name      string
		tolerance float64 // relative tolerance (e.g., 0.001 for 0.1%)
	}{
		{
			name:      "Same point",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.7749,
			lon2:      -122.4194,
			expected:  0,
			tolerance: 0.0001,
		},
		{
			name:      "Medium distance - SF to Oakland",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.8044,
			lon2:      -122.2712,
			expected:  13429.63,
			tolerance: 0.001,
		},
		{
			name:      "Long distance - SF to NYC",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      40.7128,
			lon2:      -74.0060,
			expected:  4129936.81,
			tolerance: 0.001,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := HaversineDistance(tc.lat1, tc.lon1, tc.lat2, tc.lon2)

			var difference float64
			if tc.expected == 0 {
				difference = math.Abs(result)
			} else {
				difference = math.Abs(result-tc.expected) / tc.expected
			}

			if difference > tc.tolerance {
				t.Errorf("HaversineDistance(%f, %f, %f, %f) = %f, expected %f ± %.1f%%",
					tc.lat1, tc.lon1, tc.lat2, tc.lon2, result, tc.expected, tc.tolerance*100)
			}
		})
	}
}

func TestDestinationPoint(t *testing.T) {
	origin := Point{Latitude: 0, Longitude: 0}

	t.Run("Due north", func(t *testing.T) {
		p := DestinationPoint(origin, 0, 111.19492664455873)
		if math.Abs(p.Latitude-1) > 1e-9 || math.Abs(p.Longitude) > 1e-9 {
			t.Errorf("DestinationPoint north = %+v, want (1, 0)", p)
		}
	})

	t.Run("Due east", func(t *testing.T) {
		p := DestinationPoint(origin, 90, 111.19492664455873)
		if math.Abs(p.Latitude) > 1e-9 || math.Abs(p.Longitude-1) > 1e-9 {
			t.Errorf("DestinationPoint east = %+v, want (0, 1)", p)
		}
	})

	t.Run("Distance preserved", func(t *testing.T) {
		start := Point{Latitude: 48.8566, Longitude: 2.3522}
		for _, heading := range []float64{0, 45, 135, 210, 300} {
			p := DestinationPoint(start, heading, 250)
			d := HaversineDistance(start.Latitude, start.Longitude, p.Latitude, p.Longitude)
			if math.Abs(d-250000) > 1 {
				t.Errorf("heading %.0f: distance = %f m, want 250000", heading, d)
			}
		}
	})
}

func TestCirclePath(t *testing.T) {
	center := Point{Latitude: 0, Longitude: 0}
	points := CirclePath(center, 1000*1000)

	if len(points) != CircleSteps+1 {
		t.Fatalf("CirclePath returned %d points, want %d", len(points), CircleSteps+1)
	}
	if points[0] != points[len(points)-1] {
		t.Errorf("ring not closed: first %+v, last %+v", points[0], points[len(points)-1])
	}
	for i, p := range points {
		d := HaversineDistance(center.Latitude, center.Longitude, p.Latitude, p.Longitude)
		if math.Abs(d-1000*1000) > 1 {
			t.Errorf("point %d is %f m from center, want 1000000", i, d)
		}
	}
}

func TestBounds(t *testing.T) {
	box := Bounds{
		SouthWest: Point{Latitude: 10, Longitude: 20},
		NorthEast: Point{Latitude: 20, Longitude: 30},
	}

	t.Run("Contains", func(t *testing.T) {
		tests := []struct {
			p    Point
			want bool
		}{
			{Point{15, 25}, true},
			{Point{10, 20}, true},
			{Point{20, 30}, true},
			{Point{9.99, 25}, false},
			{Point{15, 30.01}, false},
		}
		for _, tt := range tests {
			if got := box.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		}
	})

	t.Run("Intersects", func(t *testing.T) {
		if !box.Intersects(BoundsOf(Point{0, 25}, Point{30, 25})) {
			t.Error("vertical segment box crossing the bounds should intersect")
		}
		if box.Intersects(BoundsOf(Point{0, 0}, Point{5, 5})) {
			t.Error("distant box should not intersect")
		}
	})

	t.Run("Antimeridian", func(t *testing.T) {
		wrap := Bounds{
			SouthWest: Point{Latitude: -10, Longitude: 170},
			NorthEast: Point{Latitude: 10, Longitude: -170},
		}
		if !wrap.CrossesAntimeridian() {
			t.Fatal("expected box to cross the antimeridian")
		}
		if !wrap.Contains(Point{0, 179}) || !wrap.Contains(Point{0, -179}) {
			t.Error("points on either side of 180 should be contained")
		}
		if wrap.Contains(Point{0, 0}) {
			t.Error("prime meridian should not be contained")
		}
		if c := wrap.Center(); c.Longitude != 180 || c.Latitude != 0 {
			t.Errorf("Center() = %+v, want (0, 180)", c)
		}
	})

	t.Run("BoundsOf normalises corners", func(t *testing.T) {
		b := BoundsOf(Point{5, 9}, Point{-3, 2})
		want := Bounds{SouthWest: Point{-3, 2}, NorthEast: Point{5, 9}}
		if b != want {
			t.Errorf("BoundsOf = %+v, want %+v", b, want)
		}
	})
}

func TestPointFormatting(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		url  string
		raw  string
	}{
		{"Rounded", Point{35.6812345678, 139.7671234567}, "35.681235,139.767123", "35.6812345678,139.7671234567"},
		{"Negative", Point{-33.8688, -151.2093}, "-33.8688,-151.2093", "-33.8688,-151.2093"},
		{"Integers", Point{1, 0}, "1,0", "1,0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.URLValue(); got != tt.url {
				t.Errorf("URLValue() = %q, want %q", got, tt.url)
			}
			if got := tt.p.RawValue(); got != tt.raw {
				t.Errorf("RawValue() = %q, want %q", got, tt.raw)
			}
		})
	}
}
