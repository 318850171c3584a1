package style

import "testing"

func TestSerialize(t *testing.T) {
	tests := []struct {
		name     string
		sheet    Sheet
		expected string
	}{
		{
			name:     "Empty sheet",
			sheet:    nil,
			expected: "",
		},
		{
			name: "Rule without operations",
			sheet: Sheet{
				{FeatureType: "poi", ElementType: "all"},
			},
			expected: "&style=feature:poi|element:all",
		},
		{
			name: "Hue is rewritten",
			sheet: Sheet{
				{
					FeatureType: "water",
					ElementType: "geometry",
					Operations: []Operation{
						{Name: "hue", Value: "#ff0000"},
						{Name: "saturation", Value: "-20"},
					},
				},
			},
			expected: "&style=feature:water|element:geometry|hue:0xff0000|saturation:-20",
		},
		{
			name: "Only hue values are rewritten",
			sheet: Sheet{
				{
					FeatureType: "road",
					ElementType: "labels",
					Operations: []Operation{
						{Name: "color", Value: "#00ff00"},
					},
				},
			},
			expected: "&style=feature:road|element:labels|color:#00ff00",
		},
		{
			name: "Internal operations are skipped",
			sheet: Sheet{
				{
					FeatureType: "landscape",
					ElementType: "all",
					Operations: []Operation{
						{Name: "_id", Value: "42"},
						{Name: "visibility", Value: "off"},
					},
				},
			},
			expected: "&style=feature:landscape|element:all|visibility:off",
		},
		{
			name: "Declaration order is preserved",
			sheet: Sheet{
				{FeatureType: "road", ElementType: "geometry", Operations: []Operation{{Name: "lightness", Value: "100"}, {Name: "visibility", Value: "simplified"}}},
				{FeatureType: "all", ElementType: "all", Operations: []Operation{{Name: "invert_lightness", Value: "true"}}},
			},
			expected: "&style=feature:road|element:geometry|lightness:100|visibility:simplified" +
				"&style=feature:all|element:all|invert_lightness:true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Serialize(tt.sheet); got != tt.expected {
				t.Errorf("Serialize() = %q, want %q", got, tt.expected)
			}
		})
	}
}
