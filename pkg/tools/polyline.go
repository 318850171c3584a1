package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/polyline"
)

// EncodePolylineTool returns a tool definition for encoding a point sequence
func EncodePolylineTool() mcp.Tool {
	return mcp.NewTool("encode_polyline",
		mcp.WithDescription("Encode a sequence of coordinates as a compact polyline string"),
		mcp.WithArray("points",
			mcp.Required(),
			mcp.Description("Points as [{latitude, longitude}] in path order"),
		),
	)
}

// HandleEncodePolyline implements polyline encoding
func (r *Registry) HandleEncodePolyline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var points []geo.Point
	if _, err := decodeArg(req, "points", &points); err != nil {
		return ErrorWithGuidance(InvalidParam("points", err)), nil
	}
	if len(points) == 0 {
		return ErrorResponse("points must contain at least one coordinate"), nil
	}
	for i, p := range points {
		if !validPoint(p) {
			return ErrorWithGuidance(InvalidParam(fmt.Sprintf("points[%d]", i),
				fmt.Errorf("coordinate %v,%v is out of range", p.Latitude, p.Longitude))), nil
		}
	}

	return jsonResult(EncodePolylineOutput{
		Encoded: polyline.Encode(points),
		Points:  len(points),
	})
}

// DecodePolylineTool returns a tool definition for decoding a polyline string
func DecodePolylineTool() mcp.Tool {
	return mcp.NewTool("decode_polyline",
		mcp.WithDescription("Decode a polyline string back into coordinates"),
		mcp.WithString("encoded",
			mcp.Required(),
			mcp.Description("The encoded polyline, without any enc: prefix"),
		),
	)
}

// HandleDecodePolyline implements polyline decoding
func (r *Registry) HandleDecodePolyline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	logger := r.logger.With("tool", "decode_polyline")

	encoded := mcp.ParseString(req, "encoded", "")
	if encoded == "" {
		return ErrorResponse("encoded must not be empty"), nil
	}

	points, err := polyline.Decode(encoded)
	if err != nil {
		logger.Warn("failed to decode polyline", "error", err, "length", len(encoded))
		code := CodeMalformedPolyline
		if !errors.Is(err, polyline.ErrUnterminated) && !errors.Is(err, polyline.ErrInvalidByte) &&
			!errors.Is(err, polyline.ErrOddCount) {
			code = CodeInternal
		}
		return ErrorWithGuidance(NewAPIError("Polyline", code, err.Error(), "")), nil
	}

	return jsonResult(DecodePolylineOutput{Points: points, Count: len(points)})
}
