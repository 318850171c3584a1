package snapshot

import (
	"strings"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/style"
)

// MaxImageDimension is the largest width or height the renderer accepts.
const MaxImageDimension = 640

// Size is an image size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Clamp limits both dimensions to [1, MaxImageDimension].
func (s Size) Clamp() Size {
	return Size{Width: clampDimension(s.Width), Height: clampDimension(s.Height)}
}

// Or returns s with each non-positive dimension taken from fallback.
func (s Size) Or(fallback Size) Size {
	if s.Width <= 0 {
		s.Width = fallback.Width
	}
	if s.Height <= 0 {
		s.Height = fallback.Height
	}
	return s
}

func clampDimension(v int) int {
	switch {
	case v < 1:
		return 1
	case v > MaxImageDimension:
		return MaxImageDimension
	default:
		return v
	}
}

// Built-in map type identifiers.
const (
	MapTypeRoadmap   = "roadmap"
	MapTypeSatellite = "satellite"
	MapTypeHybrid    = "hybrid"
	MapTypeTerrain   = "terrain"
)

// IsBuiltinMapType reports whether id names one of the four built-in types.
func IsBuiltinMapType(id string) bool {
	switch strings.ToLower(id) {
	case MapTypeRoadmap, MapTypeSatellite, MapTypeHybrid, MapTypeTerrain:
		return true
	}
	return false
}

// Options configures a snapshot. Use DefaultOptions as the starting point;
// the zero value disables polyline encoding.
type Options struct {
	// ButtonLabelHTML and PopupLabelHTML are carried for hosts that render a
	// snapshot control. They do not affect the URL.
	ButtonLabelHTML string
	PopupLabelHTML  string
	// Hidden is carried for hosts that render a snapshot control.
	Hidden bool

	// MapType overrides map type detection when set.
	MapType string
	// Size overrides the viewport pixel size when set. A dimension left at
	// zero keeps the viewport's value.
	Size *Size
	// Language selects the label language ("hl").
	Language string
	// Format is one of gif, jpg, jpeg, jpg-baseline, png8, png32 or png.
	Format string
	// UsePolylineEncode sends paths as encoded polylines instead of raw
	// coordinate lists.
	UsePolylineEncode bool
	// AdjustCenter is accepted for compatibility with existing host
	// configurations; the center is controlled by the center override.
	AdjustCenter bool
	// AdjustZoom disables clipping and lets the renderer frame every overlay.
	AdjustZoom bool
	// Position is the center used by Builder.Snapshot when set.
	Position *geo.Point
}

// DefaultOptions returns the default snapshot options.
func DefaultOptions() Options {
	return Options{
		ButtonLabelHTML:   "Say cheese!",
		Format:            "png",
		UsePolylineEncode: true,
	}
}

// Normalize returns a copy with the size clamped and the map type, format
// and language trimmed. Unknown map types and formats are kept; they are
// handled when the URL is built.
func (o Options) Normalize() Options {
	if o.Size != nil {
		clamped := o.Size.Clamp()
		o.Size = &clamped
	}
	o.MapType = strings.ToLower(strings.TrimSpace(o.MapType))
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	o.Language = strings.TrimSpace(o.Language)
	return o
}

// formatParam maps a requested image format to its query value. Formats the
// renderer does not know are dropped rather than rejected.
func formatParam(format string) (string, bool) {
	switch format {
	case "jpg", "jpeg":
		return "jpg", true
	case "png":
		return "png32", true
	case "jpg-baseline", "png8", "png32":
		return format, true
	}
	return "", false
}

// Viewport is a point-in-time snapshot of the interactive map.
type Viewport struct {
	// MapID identifies the map; only overlays attached to it are drawn.
	MapID  string
	Bounds geo.Bounds
	Center geo.Point
	Zoom   int
	// MapTypeID is a built-in map type or the ID of a styled map type.
	MapTypeID string
	// Styles is the style sheet of a styled map type. It is ignored for
	// built-in types.
	Styles style.Sheet
	// PixelSize is the size of the map element.
	PixelSize Size
}

// Center is the tri-state center override passed to Builder.BuildURL. The
// zero value uses the viewport center.
type Center struct {
	omit  bool
	point *geo.Point
}

// CenterFromViewport uses the viewport center.
func CenterFromViewport() Center { return Center{} }

// NoCenter omits the center parameter so the renderer frames the overlays.
func NoCenter() Center { return Center{omit: true} }

// CenterAt uses p as the center.
func CenterAt(p geo.Point) Center { return Center{point: &p} }

// resolve returns the center to emit, or false when it must be omitted.
func (c Center) resolve(vp *Viewport) (geo.Point, bool) {
	switch {
	case c.omit:
		return geo.Point{}, false
	case c.point != nil:
		return *c.point, true
	default:
		return vp.Center, true
	}
}
