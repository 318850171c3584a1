package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/polyline"
	"github.com/NERVsystems/staticsnap/pkg/viewport"
)

// MaxCircleRadius is the largest circle radius accepted by circle_path.
const MaxCircleRadius = 10000000.0 // 10,000 km

// ClipPathTool returns a tool definition for viewport clipping
func ClipPathTool() mcp.Tool {
	return mcp.NewTool("clip_path",
		mcp.WithDescription("Select the vertices of a path needed to draw its visible part inside a bounding box"),
		mcp.WithArray("path",
			mcp.Required(),
			mcp.Description("Path as [{latitude, longitude}] in order"),
		),
		mcp.WithObject("bounds",
			mcp.Required(),
			mcp.Description("Visible box as {southwest, northeast}; a southwest longitude east of the northeast longitude wraps the antimeridian"),
		),
	)
}

// HandleClipPath implements viewport clipping
func (r *Registry) HandleClipPath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var path []geo.Point
	if _, err := decodeArg(req, "path", &path); err != nil {
		return ErrorWithGuidance(InvalidParam("path", err)), nil
	}

	var bounds geo.Bounds
	found, err := decodeArg(req, "bounds", &bounds)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("bounds", err)), nil
	}
	if !found {
		return ErrorResponse("bounds must be provided"), nil
	}
	if !validPoint(bounds.SouthWest) || !validPoint(bounds.NorthEast) {
		return ErrorResponse("bounds corners must be valid coordinates"), nil
	}

	vertices := viewport.PickupVisibleVertices(path, bounds)
	if vertices == nil {
		vertices = []geo.Point{}
	}

	return jsonResult(ClipPathOutput{
		Vertices: vertices,
		Total:    len(path),
		Kept:     len(vertices),
	})
}

// CirclePathTool returns a tool definition for circle approximation
func CirclePathTool() mcp.Tool {
	return mcp.NewTool("circle_path",
		mcp.WithDescription("Approximate a circle by a closed 37-point ring"),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("The latitude of the circle center"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("The longitude of the circle center"),
		),
		mcp.WithNumber("radius",
			mcp.Required(),
			mcp.Description("Circle radius in meters"),
		),
		mcp.WithBoolean("encode",
			mcp.Description("Also return the ring as an encoded polyline"),
			mcp.DefaultBool(false),
		),
	)
}

// HandleCirclePath implements circle approximation
func (r *Registry) HandleCirclePath(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	latitude, err := floatArg(req, "latitude", 0)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("latitude", err)), nil
	}
	longitude, err := floatArg(req, "longitude", 0)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("longitude", err)), nil
	}
	radius, err := floatArg(req, "radius", 0)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("radius", err)), nil
	}
	encode, err := boolArg(req, "encode", false)
	if err != nil {
		return ErrorWithGuidance(InvalidParam("encode", err)), nil
	}

	center := geo.Point{Latitude: latitude, Longitude: longitude}
	if !validPoint(center) || radius <= 0 || radius > MaxCircleRadius {
		return ErrorWithGuidance(ValidationError(latitude, longitude, radius, MaxCircleRadius)), nil
	}

	points := geo.CirclePath(center, radius)
	output := CirclePathOutput{Points: points}
	if encode {
		output.Encoded = polyline.Encode(points)
	}
	return jsonResult(output)
}
