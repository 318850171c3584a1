package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/staticsnap/pkg/snapshot"
	"github.com/NERVsystems/staticsnap/pkg/testutil"
)

func TestGetToolDefinitions(t *testing.T) {
	defs := newTestRegistry().GetToolDefinitions()

	expected := []string{
		"build_snapshot_url",
		"serialize_map_style",
		"encode_polyline",
		"decode_polyline",
		"clip_path",
		"circle_path",
	}
	if len(defs) != len(expected) {
		t.Fatalf("got %d tools, want %d", len(defs), len(expected))
	}
	for i, def := range defs {
		if def.Name != expected[i] {
			t.Errorf("tool %d = %q, want %q", i, def.Name, expected[i])
		}
		if def.Tool.Name != def.Name {
			t.Errorf("tool %q is registered as %q", def.Name, def.Tool.Name)
		}
		if def.Handler == nil {
			t.Errorf("tool %q has no handler", def.Name)
		}
	}
}

func TestRegistryWithBuilder(t *testing.T) {
	builder := snapshot.NewBuilder("maps.google.co.jp", "true")
	r := NewRegistry(testutil.DiscardLogger(), WithBuilder(builder))

	args := map[string]any{"viewport": testViewportArg(), "center": "none"}
	result, _ := r.HandleBuildSnapshotURL(context.Background(), newRequest("build_snapshot_url", args))
	var output BuildSnapshotURLOutput
	decodeResult(t, result, &output)

	if !strings.HasPrefix(output.URL, "http://maps.google.co.jp/") || !strings.HasSuffix(output.URL, "&sensor=true") {
		t.Errorf("URL = %q, want configured host and sensor", output.URL)
	}
}

func TestInstrumentRateLimit(t *testing.T) {
	r := NewRegistry(testutil.DiscardLogger(), WithRateLimiter(NewRateLimiter(0.001, 1)))
	calls := 0
	handler := r.instrument("encode_polyline", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		calls++
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), newRequest("encode_polyline", nil))
	if err != nil || result.IsError {
		t.Fatalf("first call failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err = handler(ctx, newRequest("encode_polyline", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), GuidanceRateLimit) {
		t.Errorf("expected rate limit error, got %s", resultText(t, result))
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}
