package tools

import (
	"fmt"
	"strings"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/snapshot"
	"github.com/NERVsystems/staticsnap/pkg/style"
)

// defaultMapID is used when the viewport does not name its map.
const defaultMapID = "map"

// Overlay styles used when an overlay carries none.
var (
	defaultLineStyle = snapshot.PathStyle{StrokeColor: "#000000", StrokeOpacity: 1}
	defaultAreaStyle = snapshot.PathStyle{StrokeColor: "#000000", StrokeOpacity: 1, FillColor: "#000000", FillOpacity: 0.3}
)

// ViewportInput describes the visible state of the interactive map.
type ViewportInput struct {
	MapID     string      `json:"map_id,omitempty"`
	Bounds    geo.Bounds  `json:"bounds"`
	Center    *geo.Point  `json:"center,omitempty"` // defaults to the bounds center
	Zoom      int         `json:"zoom"`
	MapTypeID string      `json:"map_type_id,omitempty"`
	Styles    style.Sheet `json:"styles,omitempty"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
}

// Viewport converts the input to a snapshot viewport.
func (in ViewportInput) Viewport() (*snapshot.Viewport, error) {
	if !validPoint(in.Bounds.SouthWest) || !validPoint(in.Bounds.NorthEast) {
		return nil, fmt.Errorf("bounds corners must be valid coordinates")
	}
	if in.Bounds.SouthWest.Latitude > in.Bounds.NorthEast.Latitude {
		return nil, fmt.Errorf("southwest latitude %v is north of northeast latitude %v",
			in.Bounds.SouthWest.Latitude, in.Bounds.NorthEast.Latitude)
	}

	vp := &snapshot.Viewport{
		MapID:     in.MapID,
		Bounds:    in.Bounds,
		Center:    in.Bounds.Center(),
		Zoom:      in.Zoom,
		MapTypeID: in.MapTypeID,
		Styles:    in.Styles,
		PixelSize: snapshot.Size{Width: in.Width, Height: in.Height},
	}
	if vp.MapID == "" {
		vp.MapID = defaultMapID
	}
	if vp.MapTypeID == "" {
		vp.MapTypeID = snapshot.MapTypeRoadmap
	}
	if in.Center != nil {
		vp.Center = *in.Center
	}
	return vp, nil
}

// OverlayInput is a tagged overlay. Type selects which fields apply:
//
//	marker      position, size, label, color, icon, shadow
//	polyline    path, style
//	polygon     path, style
//	circle      center, radius (meters), style
//	rectangle   bounds, style
//	directions  routes, style
//
// Map defaults to the viewport's map; any other value detaches the overlay.
type OverlayInput struct {
	Type     string              `json:"type"`
	Map      string              `json:"map,omitempty"`
	Path     []geo.Point         `json:"path,omitempty"`
	Center   *geo.Point          `json:"center,omitempty"`
	Radius   float64             `json:"radius,omitempty"`
	Bounds   *geo.Bounds         `json:"bounds,omitempty"`
	Position *geo.Point          `json:"position,omitempty"`
	Size     string              `json:"size,omitempty"`
	Label    string              `json:"label,omitempty"`
	Color    string              `json:"color,omitempty"`
	Icon     string              `json:"icon,omitempty"`
	Shadow   string              `json:"shadow,omitempty"`
	Style    *snapshot.PathStyle `json:"style,omitempty"`
	Routes   []snapshot.Route    `json:"routes,omitempty"`
}

// Overlay converts the input to a snapshot overlay attached to mapID unless
// the input names another map.
func (in OverlayInput) Overlay(mapID string) (snapshot.Overlay, error) {
	att := snapshot.Attachment{Map: mapID}
	if in.Map != "" {
		att.Map = in.Map
	}

	lineStyle, areaStyle := defaultLineStyle, defaultAreaStyle
	if in.Style != nil {
		if err := checkStyle(*in.Style); err != nil {
			return nil, err
		}
		lineStyle, areaStyle = *in.Style, *in.Style
	}

	switch strings.ToLower(in.Type) {
	case "marker":
		if in.Position == nil {
			return nil, fmt.Errorf("marker requires position")
		}
		fields := []struct{ name, value string }{
			{"size", in.Size}, {"label", in.Label}, {"color", in.Color}, {"icon", in.Icon}, {"shadow", in.Shadow},
		}
		for _, f := range fields {
			if err := queryValue("marker "+f.name, f.value); err != nil {
				return nil, err
			}
		}
		return snapshot.Marker{
			Attachment: att,
			Position:   *in.Position,
			Size:       in.Size,
			Label:      in.Label,
			Color:      in.Color,
			Icon:       in.Icon,
			Shadow:     in.Shadow,
		}, nil
	case "polyline":
		if len(in.Path) == 0 {
			return nil, fmt.Errorf("polyline requires path")
		}
		return snapshot.Polyline{Attachment: att, Path: in.Path, Style: lineStyle}, nil
	case "polygon":
		if len(in.Path) == 0 {
			return nil, fmt.Errorf("polygon requires path")
		}
		return snapshot.Polygon{Attachment: att, Path: in.Path, Style: areaStyle}, nil
	case "circle":
		if in.Center == nil || in.Radius <= 0 {
			return nil, fmt.Errorf("circle requires center and a positive radius")
		}
		return snapshot.Circle{Attachment: att, Center: *in.Center, RadiusMeters: in.Radius, Style: areaStyle}, nil
	case "rectangle":
		if in.Bounds == nil {
			return nil, fmt.Errorf("rectangle requires bounds")
		}
		return snapshot.Rectangle{Attachment: att, Bounds: *in.Bounds, Style: areaStyle}, nil
	case "directions":
		if len(in.Routes) == 0 {
			return nil, fmt.Errorf("directions requires routes")
		}
		return snapshot.Directions{Attachment: att, Routes: in.Routes, Style: in.Style}, nil
	}
	return nil, fmt.Errorf("unknown overlay type %q", in.Type)
}

// checkStyle rejects colors that cannot be copied into a path descriptor.
// The leading '#' of a hex color is allowed.
func checkStyle(ps snapshot.PathStyle) error {
	if err := queryValue("strokeColor", strings.TrimPrefix(ps.StrokeColor, "#")); err != nil {
		return err
	}
	return queryValue("fillColor", strings.TrimPrefix(ps.FillColor, "#"))
}

// OptionsInput holds the snapshot options. Omitted fields keep their
// defaults: png format and polyline encoding on.
type OptionsInput struct {
	MapType           string     `json:"map_type,omitempty"`
	Language          string     `json:"language,omitempty"`
	Format            *string    `json:"format,omitempty"`
	Width             int        `json:"width,omitempty"`
	Height            int        `json:"height,omitempty"`
	UsePolylineEncode *bool      `json:"use_polyline_encode,omitempty"`
	AdjustCenter      bool       `json:"adjust_center,omitempty"`
	AdjustZoom        bool       `json:"adjust_zoom,omitempty"`
	Position          *geo.Point `json:"position,omitempty"`
}

// Options converts the input to snapshot options. A size with one dimension
// keeps the viewport's value for the other.
func (in OptionsInput) Options() (snapshot.Options, error) {
	if err := queryValue("language", strings.TrimSpace(in.Language)); err != nil {
		return snapshot.Options{}, err
	}
	opts := snapshot.DefaultOptions()
	opts.MapType = in.MapType
	opts.Language = in.Language
	if in.Format != nil {
		opts.Format = *in.Format
	}
	if in.Width > 0 || in.Height > 0 {
		opts.Size = &snapshot.Size{Width: in.Width, Height: in.Height}
	}
	if in.UsePolylineEncode != nil {
		opts.UsePolylineEncode = *in.UsePolylineEncode
	}
	opts.AdjustCenter = in.AdjustCenter
	opts.AdjustZoom = in.AdjustZoom
	opts.Position = in.Position
	return opts, nil
}

// BuildSnapshotURLOutput is the result of build_snapshot_url.
type BuildSnapshotURLOutput struct {
	URL    string `json:"url"`
	Length int    `json:"length"`
	Cached bool   `json:"cached"`
}

// SerializeStyleOutput is the result of serialize_map_style.
type SerializeStyleOutput struct {
	Fragment string `json:"fragment"`
}

// EncodePolylineOutput is the result of encode_polyline.
type EncodePolylineOutput struct {
	Encoded string `json:"encoded"`
	Points  int    `json:"points"`
}

// DecodePolylineOutput is the result of decode_polyline.
type DecodePolylineOutput struct {
	Points []geo.Point `json:"points"`
	Count  int         `json:"count"`
}

// ClipPathOutput is the result of clip_path.
type ClipPathOutput struct {
	Vertices []geo.Point `json:"vertices"`
	Total    int         `json:"total"`
	Kept     int         `json:"kept"`
}

// CirclePathOutput is the result of circle_path.
type CirclePathOutput struct {
	Points  []geo.Point `json:"points"`
	Encoded string      `json:"encoded,omitempty"`
}
