package tools

import (
	"context"
	"strings"
	"testing"
)

func TestHandleEncodePolyline(t *testing.T) {
	args := map[string]any{
		"points": []any{point(38.5, -120.2), point(40.7, -120.95), point(43.252, -126.453)},
	}

	result, err := newTestRegistry().HandleEncodePolyline(context.Background(), newRequest("encode_polyline", args))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var output EncodePolylineOutput
	decodeResult(t, result, &output)

	if output.Encoded != "_p~iF~ps|U_ulLnnqC_mqNvxq`@" {
		t.Errorf("Encoded = %q", output.Encoded)
	}
	if output.Points != 3 {
		t.Errorf("Points = %d, want 3", output.Points)
	}
}

func TestHandleEncodePolylineErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		expected string
	}{
		{"Missing points", map[string]any{}, "at least one"},
		{"Out of range", map[string]any{"points": []any{point(91, 0)}}, "out of range"},
		{"Not an array", map[string]any{"points": "nope"}, "Invalid points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _ := newTestRegistry().HandleEncodePolyline(context.Background(), newRequest("encode_polyline", tt.args))
			if !result.IsError {
				t.Fatal("expected error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.expected) {
				t.Errorf("error text = %q, want it to contain %q", text, tt.expected)
			}
		})
	}
}

func TestHandleDecodePolyline(t *testing.T) {
	args := map[string]any{"encoded": "_p~iF~ps|U"}

	result, err := newTestRegistry().HandleDecodePolyline(context.Background(), newRequest("decode_polyline", args))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var output DecodePolylineOutput
	decodeResult(t, result, &output)

	if output.Count != 1 || len(output.Points) != 1 {
		t.Fatalf("output = %+v, want one point", output)
	}
	if output.Points[0].Latitude != 38.5 || output.Points[0].Longitude != -120.2 {
		t.Errorf("point = %+v, want 38.5,-120.2", output.Points[0])
	}
}

func TestHandleDecodePolylineErrors(t *testing.T) {
	for _, encoded := range []string{"_p~iF", "_p~iF~ps|", "_p~iF ps|U"} {
		result, _ := newTestRegistry().HandleDecodePolyline(context.Background(),
			newRequest("decode_polyline", map[string]any{"encoded": encoded}))
		if !result.IsError {
			t.Errorf("%q: expected error result", encoded)
			continue
		}
		if text := resultText(t, result); !strings.Contains(text, GuidancePolyline) {
			t.Errorf("%q: error text = %q, want polyline guidance", encoded, text)
		}
	}

	result, _ := newTestRegistry().HandleDecodePolyline(context.Background(), newRequest("decode_polyline", map[string]any{}))
	if !result.IsError {
		t.Error("expected error result for empty input")
	}
}
