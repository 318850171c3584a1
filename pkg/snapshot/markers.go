package snapshot

import (
	"strings"
	"unicode"
)

// markerGroups keeps marker coordinates grouped by option string in the
// order each option string was first seen.
type markerGroups struct {
	order  []string
	coords map[string][]string
}

func (g *markerGroups) add(options, coord string) {
	if g.coords == nil {
		g.coords = make(map[string][]string)
	}
	if _, ok := g.coords[options]; !ok {
		g.order = append(g.order, options)
	}
	g.coords[options] = append(g.coords[options], coord)
}

// writeMarkers emits one markers parameter per distinct option string.
func writeMarkers(sb *strings.Builder, vp *Viewport, overlays []Overlay, opts Options) bool {
	var groups markerGroups
	icons := make(map[string]bool)

	for _, ov := range overlays {
		m, ok := ov.(Marker)
		if !ok {
			continue
		}
		if !opts.AdjustZoom && !vp.Bounds.Contains(m.Position) {
			continue
		}
		groups.add(markerOptions(m, icons), m.Position.URLValue())
	}

	for _, options := range groups.order {
		sb.WriteString("&markers=")
		sb.WriteString(options)
		if options != "" {
			sb.WriteString("|")
		}
		sb.WriteString(strings.Join(groups.coords[options], "|"))
	}
	return len(groups.order) > 0
}

// markerOptions renders the style part of a markers parameter: size, label,
// color, then icon and shadow. icons tracks the distinct icons used so far;
// once MaxMarkerIcons are in use, markers with a new icon are sent without it.
func markerOptions(m Marker, icons map[string]bool) string {
	var parts []string

	size := strings.ToLower(m.Size)
	switch size {
	case "tiny", "small", "mid":
		parts = append(parts, "size:"+size)
	}

	if size != "tiny" && m.Label != "" {
		if r := []rune(m.Label)[0]; r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			parts = append(parts, "label:"+string(unicode.ToUpper(r)))
		}
	}

	if m.Color != "" {
		parts = append(parts, "color:"+normalizeColor(m.Color))
	}

	if m.Icon != "" && (icons[m.Icon] || len(icons) < MaxMarkerIcons) {
		icons[m.Icon] = true
		parts = append(parts, "icon:"+m.Icon)
		if m.Shadow == "" {
			parts = append(parts, "shadow:false")
		}
	}

	return strings.Join(parts, "|")
}
