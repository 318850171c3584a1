package snapshot

import (
	"math"
	"strconv"
	"strings"

	"github.com/NERVsystems/staticsnap/pkg/geo"
)

// Kind identifies the overlay variant.
type Kind int

const (
	KindMarker Kind = iota
	KindPolyline
	KindPolygon
	KindCircle
	KindRectangle
	KindDirections
)

var kindNames = map[Kind]string{
	KindMarker:     "marker",
	KindPolyline:   "polyline",
	KindPolygon:    "polygon",
	KindCircle:     "circle",
	KindRectangle:  "rectangle",
	KindDirections: "directions",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Overlay is a geometric annotation drawn on the interactive map. The
// concrete types are Marker, Polyline, Polygon, Circle, Rectangle and
// Directions.
type Overlay interface {
	// Kind returns the overlay variant.
	Kind() Kind
	// MapID identifies the map the overlay is attached to. Overlays whose
	// MapID differs from the viewport's are not rendered.
	MapID() string
}

// Attachment records which map an overlay belongs to. An empty map ID means
// the overlay is detached.
type Attachment struct {
	Map string `json:"map"`
}

// MapID implements Overlay.
func (a Attachment) MapID() string { return a.Map }

// DefaultStrokeWeight is the renderer's stroke weight; it is never sent.
const DefaultStrokeWeight = 5

// PathStyle holds the stroke and fill settings of a path overlay. Colors are
// "#rrggbb" or any value the renderer accepts; opacities are in [0,1].
type PathStyle struct {
	StrokeColor   string  `json:"strokeColor"`
	StrokeOpacity float64 `json:"strokeOpacity"`
	StrokeWeight  int     `json:"strokeWeight,omitempty"`
	FillColor     string  `json:"fillColor,omitempty"`
	FillOpacity   float64 `json:"fillOpacity,omitempty"`
}

// DefaultRouteStyle is used for route renderings without an explicit style.
var DefaultRouteStyle = PathStyle{StrokeOpacity: 0.5, StrokeColor: "#0000FF"}

// Polyline is an open path.
type Polyline struct {
	Attachment
	Path  []geo.Point
	Style PathStyle
}

// Kind implements Overlay.
func (Polyline) Kind() Kind { return KindPolyline }

// Polygon is a closed path. The ring is closed automatically.
type Polygon struct {
	Attachment
	Path  []geo.Point
	Style PathStyle
}

// Kind implements Overlay.
func (Polygon) Kind() Kind { return KindPolygon }

// Circle is approximated by a 37-vertex ring.
type Circle struct {
	Attachment
	Center       geo.Point
	RadiusMeters float64
	Style        PathStyle
}

// Kind implements Overlay.
func (Circle) Kind() Kind { return KindCircle }

// Rectangle is an axis-aligned box.
type Rectangle struct {
	Attachment
	Bounds geo.Bounds
	Style  PathStyle
}

// Kind implements Overlay.
func (Rectangle) Kind() Kind { return KindRectangle }

// Marker is a point annotation. Size is one of "tiny", "small" or "mid";
// anything else falls back to the renderer default. Label is a single
// alphanumeric character. Icon is an image URL and Shadow its shadow image.
type Marker struct {
	Attachment
	Position geo.Point
	Size     string
	Label    string
	Color    string
	Icon     string
	Shadow   string
}

// Kind implements Overlay.
func (Marker) Kind() Kind { return KindMarker }

// Leg is one stop-to-stop section of a route.
type Leg struct {
	Start geo.Point `json:"start"`
	End   geo.Point `json:"end"`
}

// Route is one route of a directions result.
type Route struct {
	OverviewPath []geo.Point `json:"overviewPath"`
	Legs         []Leg       `json:"legs"`
}

// Directions is a rendered directions result. A nil Style selects
// DefaultRouteStyle.
type Directions struct {
	Attachment
	Routes []Route
	Style  *PathStyle
}

// Kind implements Overlay.
func (Directions) Kind() Kind { return KindDirections }

// normalizeColor rewrites the leading '#' of a hex color to the "0x" form
// expected by the renderer.
func normalizeColor(color string) string {
	return strings.Replace(color, "#", "0x", 1)
}

// opacityHex maps an opacity to floor(256*o) in lower-case hex without
// padding, so 1.0 yields "100" and 0 yields "0". Opacities outside [0,1]
// are clamped first so the color keeps at most three opacity digits.
func opacityHex(opacity float64) string {
	if math.IsNaN(opacity) || opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	return strconv.FormatInt(int64(math.Floor(256*opacity)), 16)
}
