// Package snapshot turns a live map viewport and its overlays into a single
// static map image URL.
//
// The builder is a pure function of its inputs: it performs no I/O, holds no
// state between calls apart from the injected host and sensor values, and
// either returns a complete URL or a *BuildError.
package snapshot

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/polyline"
	"github.com/NERVsystems/staticsnap/pkg/style"
	"github.com/NERVsystems/staticsnap/pkg/viewport"
)

const (
	// DefaultHost is the static map host used when none is configured.
	DefaultHost = "maps.google.com"

	// MaxURLLength is the longest URL the renderer accepts.
	MaxURLLength = 2000

	// MaxZoom is the highest zoom level sent as a number. Anything above is
	// sent as "21+".
	MaxZoom = 20

	// MaxMarkerIcons is the number of distinct custom icons per URL.
	MaxMarkerIcons = 6

	apiPath = "/maps/api/staticmap?"
)

// Builder assembles static map URLs for one renderer host.
type Builder struct {
	host   string
	sensor string
	logger *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a builder for host. sensor is sent verbatim as the
// "sensor" parameter of every URL.
func NewBuilder(host, sensor string, opts ...BuilderOption) *Builder {
	if host == "" {
		host = DefaultHost
	}
	if sensor == "" {
		sensor = "false"
	}
	b := &Builder{
		host:   host,
		sensor: sensor,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Host returns the renderer host.
func (b *Builder) Host() string { return b.host }

// Snapshot builds a URL centered on opts.Position when set, or on the
// viewport center otherwise.
func (b *Builder) Snapshot(vp *Viewport, overlays []Overlay, opts Options) (string, error) {
	center := CenterFromViewport()
	if opts.Position != nil {
		center = CenterAt(*opts.Position)
	}
	return b.BuildURL(vp, overlays, opts, center)
}

// BuildURL builds the static map URL for vp and the overlays attached to it.
//
// Parameters are emitted in a fixed order: size, maptype or style, hl,
// format, path, markers, zoom, center and sensor. Paths are drawn before
// route renderings, which are drawn before markers.
func (b *Builder) BuildURL(vp *Viewport, overlays []Overlay, opts Options, center Center) (string, error) {
	if vp == nil {
		return "", &BuildError{Kind: MissingViewport}
	}
	if opts.Size != nil {
		filled := opts.Size.Or(vp.PixelSize)
		opts.Size = &filled
	}
	opts = opts.Normalize()

	var sb strings.Builder
	sb.WriteString("http://")
	sb.WriteString(b.host)
	sb.WriteString(apiPath)

	size := vp.PixelSize.Clamp()
	if opts.Size != nil {
		size = *opts.Size
	}
	sb.WriteString("size=")
	sb.WriteString(strconv.Itoa(size.Width))
	sb.WriteString("x")
	sb.WriteString(strconv.Itoa(size.Height))

	sb.WriteString(mapTypeParams(vp, opts))

	if opts.Language != "" {
		sb.WriteString("&hl=")
		sb.WriteString(opts.Language)
	}
	if format, ok := formatParam(opts.Format); ok {
		sb.WriteString("&format=")
		sb.WriteString(format)
	}

	attached := make([]Overlay, 0, len(overlays))
	for _, ov := range overlays {
		ov = deref(ov)
		if ov == nil {
			continue
		}
		if ov.MapID() != vp.MapID {
			b.logger.Debug("skipping detached overlay", "kind", ov.Kind(), "map", ov.MapID())
			continue
		}
		attached = append(attached, ov)
	}

	drawn := b.writePaths(&sb, vp, attached, opts)
	if b.writeRoutes(&sb, vp, attached, opts) {
		drawn = true
	}
	if writeMarkers(&sb, vp, attached, opts) {
		drawn = true
	}

	if !opts.AdjustZoom || !drawn {
		sb.WriteString("&zoom=")
		sb.WriteString(zoomParam(vp.Zoom))
	}

	if p, ok := center.resolve(vp); ok {
		sb.WriteString("&center=")
		sb.WriteString(p.URLValue())
	}

	sb.WriteString("&sensor=")
	sb.WriteString(b.sensor)

	url := sb.String()
	if len(url) > MaxURLLength {
		b.logger.Debug("snapshot url over budget", "length", len(url), "limit", MaxURLLength)
		return "", &BuildError{Kind: URLTooLong, Length: len(url), Limit: MaxURLLength}
	}
	return url, nil
}

// SerializeStyle renders a style sheet as "&style=" query parameters.
func SerializeStyle(sheet style.Sheet) string {
	return style.Serialize(sheet)
}

// mapTypeParams returns the maptype parameter, or the style parameters of a
// styled map type.
func mapTypeParams(vp *Viewport, opts Options) string {
	if opts.MapType != "" {
		return "&maptype=" + opts.MapType
	}
	if id := strings.ToLower(vp.MapTypeID); IsBuiltinMapType(id) {
		return "&maptype=" + id
	}
	if vp.Styles != nil {
		return style.Serialize(vp.Styles)
	}
	return "&maptype=" + MapTypeRoadmap
}

func zoomParam(zoom int) string {
	if zoom < 0 {
		zoom = 0
	}
	if zoom > MaxZoom {
		return "21+"
	}
	return strconv.Itoa(zoom)
}

// writePaths emits one path parameter per visible polyline, polygon, circle
// or rectangle and reports whether anything was written.
func (b *Builder) writePaths(sb *strings.Builder, vp *Viewport, overlays []Overlay, opts Options) bool {
	drawn := false
	for _, ov := range overlays {
		var (
			points []geo.Point
			ps     PathStyle
			closed bool
		)
		switch o := ov.(type) {
		case Polyline:
			points, ps = o.Path, o.Style
		case Polygon:
			points, ps, closed = o.Path, o.Style, true
		case Circle:
			points, ps, closed = geo.CirclePath(o.Center, o.RadiusMeters), o.Style, true
		case Rectangle:
			points, ps, closed = rectangleRing(o.Bounds), o.Style, true
		default:
			continue
		}

		if closed {
			points = closeRing(points)
		}
		vertices := b.visibleVertices(points, vp, opts)
		if len(vertices) == 0 {
			b.logger.Debug("overlay outside viewport", "kind", ov.Kind())
			continue
		}

		writePath(sb, vertices, ps, closed, opts.UsePolylineEncode)
		drawn = true
	}
	return drawn
}

// writeRoutes emits the overview path of every route together with lettered
// markers at the leg endpoints.
func (b *Builder) writeRoutes(sb *strings.Builder, vp *Viewport, overlays []Overlay, opts Options) bool {
	drawn := false
	for _, ov := range overlays {
		d, ok := ov.(Directions)
		if !ok {
			continue
		}
		ps := DefaultRouteStyle
		if d.Style != nil {
			ps = *d.Style
		}

		for _, route := range d.Routes {
			vertices := b.visibleVertices(route.OverviewPath, vp, opts)
			if len(vertices) == 0 {
				continue
			}
			writePath(sb, vertices, ps, false, opts.UsePolylineEncode)

			for j, leg := range route.Legs {
				if opts.AdjustZoom || vp.Bounds.Contains(leg.Start) {
					writeLegMarker(sb, j, leg.Start)
				}
				if j == len(route.Legs)-1 && (opts.AdjustZoom || vp.Bounds.Contains(leg.End)) {
					writeLegMarker(sb, j+1, leg.End)
				}
			}
			drawn = true
		}
	}
	return drawn
}

func writeLegMarker(sb *strings.Builder, index int, p geo.Point) {
	sb.WriteString("&markers=label:")
	sb.WriteRune(rune('A' + index))
	sb.WriteString("|color:green|")
	sb.WriteString(p.URLValue())
}

func (b *Builder) visibleVertices(points []geo.Point, vp *Viewport, opts Options) []geo.Point {
	if opts.AdjustZoom {
		return points
	}
	vertices := viewport.PickupVisibleVertices(points, vp.Bounds)
	if len(vertices) < len(points) {
		b.logger.Debug("clipped path", "vertices", len(points), "visible", len(vertices))
	}
	return vertices
}

func writePath(sb *strings.Builder, vertices []geo.Point, ps PathStyle, closed, encode bool) {
	sb.WriteString("&path=color:")
	sb.WriteString(normalizeColor(ps.StrokeColor))
	sb.WriteString(opacityHex(ps.StrokeOpacity))
	if closed {
		sb.WriteString("|fillcolor:")
		sb.WriteString(normalizeColor(ps.FillColor))
		sb.WriteString(opacityHex(ps.FillOpacity))
	}
	if ps.StrokeWeight != 0 && ps.StrokeWeight != DefaultStrokeWeight {
		sb.WriteString("|weight:")
		sb.WriteString(strconv.Itoa(ps.StrokeWeight))
	}
	sb.WriteString("|")

	if encode {
		sb.WriteString("enc:")
		sb.WriteString(polyline.Encode(vertices))
		return
	}
	for i, p := range vertices {
		if i > 0 {
			sb.WriteString("|")
		}
		sb.WriteString(p.RawValue())
	}
}

// rectangleRing returns the corners of bounds starting at the south-east
// corner and winding through north-east, north-west and south-west.
func rectangleRing(bounds geo.Bounds) []geo.Point {
	sw, ne := bounds.SouthWest, bounds.NorthEast
	return []geo.Point{
		{Latitude: sw.Latitude, Longitude: ne.Longitude},
		{Latitude: ne.Latitude, Longitude: ne.Longitude},
		{Latitude: ne.Latitude, Longitude: sw.Longitude},
		{Latitude: sw.Latitude, Longitude: sw.Longitude},
	}
}

// closeRing appends the first vertex when the ring is open. The input slice
// is never modified.
func closeRing(points []geo.Point) []geo.Point {
	n := len(points)
	if n == 0 || points[0] == points[n-1] {
		return points
	}
	return append(points[:n:n], points[0])
}

// deref lets callers pass overlays by pointer.
func deref(ov Overlay) Overlay {
	switch o := ov.(type) {
	case *Marker:
		if o != nil {
			return *o
		}
	case *Polyline:
		if o != nil {
			return *o
		}
	case *Polygon:
		if o != nil {
			return *o
		}
	case *Circle:
		if o != nil {
			return *o
		}
	case *Rectangle:
		if o != nil {
			return *o
		}
	case *Directions:
		if o != nil {
			return *o
		}
	default:
		return ov
	}
	return nil
}
