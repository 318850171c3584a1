package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/staticsnap/pkg/cache"
	"github.com/NERVsystems/staticsnap/pkg/metrics"
	"github.com/NERVsystems/staticsnap/pkg/snapshot"
	"github.com/NERVsystems/staticsnap/pkg/style"
)

// BuildSnapshotURLTool returns a tool definition for building static map URLs
func BuildSnapshotURLTool() mcp.Tool {
	return mcp.NewTool("build_snapshot_url",
		mcp.WithDescription("Build a static map image URL reproducing a map viewport and its overlays"),
		mcp.WithObject("viewport",
			mcp.Required(),
			mcp.Description("Visible map state: bounds {southwest, northeast}, zoom, width, height, optional map_id, center, map_type_id and styles"),
		),
		mcp.WithArray("overlays",
			mcp.Description("Overlays to draw. Each has a type (marker, polyline, polygon, circle, rectangle, directions) and its geometry"),
		),
		mcp.WithObject("options",
			mcp.Description("Snapshot options: map_type, language, format, width, height, use_polyline_encode, adjust_zoom, position"),
		),
		mcp.WithString("center",
			centerSchema(),
			mcp.Description("Center override: \"viewport\" (default), \"none\" to let the renderer frame the overlays, or a {latitude, longitude} object"),
		),
	)
}

// HandleBuildSnapshotURL implements static map URL synthesis
func (r *Registry) HandleBuildSnapshotURL(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "build_snapshot_url")

	key, err := cache.Key(req.Params.Arguments)
	if err != nil {
		logger.Warn("failed to compute cache key", "error", err)
	} else if url, ok := r.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return jsonResult(BuildSnapshotURLOutput{URL: url, Length: len(url), Cached: true})
	}
	metrics.CacheMisses.Inc()

	var vp *snapshot.Viewport
	var vpIn ViewportInput
	found, err := decodeArg(req, "viewport", &vpIn)
	if err != nil {
		metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
		return ErrorWithGuidance(InvalidParam("viewport", err)), nil
	}
	if found {
		if vp, err = vpIn.Viewport(); err != nil {
			metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
			return ErrorWithGuidance(InvalidParam("viewport", err)), nil
		}
	}

	var inputs []OverlayInput
	if _, err := decodeArg(req, "overlays", &inputs); err != nil {
		metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
		return ErrorWithGuidance(InvalidParam("overlays", err)), nil
	}
	mapID := defaultMapID
	if vp != nil {
		mapID = vp.MapID
	}
	overlays := make([]snapshot.Overlay, 0, len(inputs))
	for i, in := range inputs {
		ov, err := in.Overlay(mapID)
		if err != nil {
			metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
			return ErrorWithGuidance(InvalidParam(fmt.Sprintf("overlays[%d]", i), err)), nil
		}
		overlays = append(overlays, ov)
	}

	var optsIn OptionsInput
	if _, err := decodeArg(req, "options", &optsIn); err != nil {
		metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
		return ErrorWithGuidance(InvalidParam("options", err)), nil
	}
	opts, err := optsIn.Options()
	if err != nil {
		metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
		return ErrorWithGuidance(InvalidParam("options", err)), nil
	}

	center, err := centerArg(req)
	if err != nil {
		metrics.ObserveBuild(metrics.OutcomeInvalidInput, 0)
		return ErrorWithGuidance(InvalidParam("center", err)), nil
	}
	if _, set := req.Params.Arguments["center"]; !set && opts.Position != nil {
		center = snapshot.CenterAt(*opts.Position)
	}

	url, err := r.builder.BuildURL(vp, overlays, opts, center)
	if err != nil {
		var buildErr *snapshot.BuildError
		if !errors.As(err, &buildErr) {
			logger.Error("unexpected build failure", "error", err)
			return ErrorWithGuidance(NewAPIError("Snapshot", CodeInternal, err.Error(), "")), nil
		}
		switch buildErr.Kind {
		case snapshot.URLTooLong:
			logger.Warn("snapshot url too long", "length", buildErr.Length, "limit", buildErr.Limit)
			metrics.ObserveBuild(metrics.OutcomeURLTooLong, 0)
			return ErrorWithGuidance(NewAPIError("Snapshot", CodeURLTooLong,
				fmt.Sprintf("URL would be %d characters (limit %d)", buildErr.Length, buildErr.Limit), "")), nil
		default:
			metrics.ObserveBuild(metrics.OutcomeMissingViewport, 0)
			return ErrorWithGuidance(NewAPIError("Snapshot", CodeMissingViewport, "No viewport was provided", "")), nil
		}
	}

	metrics.ObserveBuild(metrics.OutcomeOK, len(url))
	if key != "" {
		r.cache.Set(key, url)
	}
	logger.Debug("built snapshot url", "length", len(url), "overlays", len(overlays))

	return jsonResult(BuildSnapshotURLOutput{URL: url, Length: len(url)})
}

// SerializeMapStyleTool returns a tool definition for serializing style rules
func SerializeMapStyleTool() mcp.Tool {
	return mcp.NewTool("serialize_map_style",
		mcp.WithDescription("Convert custom map style rules into static map style parameters"),
		mcp.WithArray("styles",
			mcp.Required(),
			mcp.Description("Style rules: [{featureType, elementType, operations: [{name, value}]}] in priority order"),
		),
	)
}

// HandleSerializeMapStyle implements style sheet serialization
func (r *Registry) HandleSerializeMapStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sheet style.Sheet
	found, err := decodeArg(req, "styles", &sheet)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("styles", err)), nil
	}
	if !found {
		return ErrorResponse("styles must be provided"), nil
	}

	return jsonResult(SerializeStyleOutput{Fragment: snapshot.SerializeStyle(sheet)})
}
