package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"

	"github.com/NERVsystems/staticsnap/pkg/geo"
	"github.com/NERVsystems/staticsnap/pkg/snapshot"
)

// decodeArg decodes a structured argument into dst. Clients send objects and
// arrays either as JSON values or as JSON-encoded strings; both are accepted.
// It reports whether the argument was present.
func decodeArg(req mcp.CallToolRequest, name string, dst any) (bool, error) {
	param, ok := req.Params.Arguments[name]
	if !ok || param == nil {
		return false, nil
	}

	var data []byte
	if s, ok := param.(string); ok {
		data = []byte(s)
	} else {
		var err error
		if data, err = json.Marshal(param); err != nil {
			return true, fmt.Errorf("failed to marshal parameter %s: %w", name, err)
		}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

// floatArg reads a numeric argument, accepting numbers sent as strings.
func floatArg(req mcp.CallToolRequest, name string, def float64) (float64, error) {
	param, ok := req.Params.Arguments[name]
	if !ok || param == nil {
		return def, nil
	}
	v, err := cast.ToFloat64E(param)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", name, err)
	}
	return v, nil
}

// boolArg reads a boolean argument, accepting "true"/"false" strings.
func boolArg(req mcp.CallToolRequest, name string, def bool) (bool, error) {
	param, ok := req.Params.Arguments[name]
	if !ok || param == nil {
		return def, nil
	}
	v, err := cast.ToBoolE(param)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", name, err)
	}
	return v, nil
}

// centerArg reads the center override. It accepts a point object, "viewport"
// (or true) for the viewport center, and "none" (or false) to omit it.
func centerArg(req mcp.CallToolRequest) (snapshot.Center, error) {
	param, ok := req.Params.Arguments["center"]
	if !ok || param == nil {
		return snapshot.CenterFromViewport(), nil
	}

	if _, isObject := param.(map[string]any); isObject || isJSONObject(param) {
		var p geo.Point
		if _, err := decodeArg(req, "center", &p); err != nil {
			return snapshot.Center{}, err
		}
		return snapshot.CenterAt(p), nil
	}

	switch strings.ToLower(strings.TrimSpace(cast.ToString(param))) {
	case "", "viewport", "true":
		return snapshot.CenterFromViewport(), nil
	case "none", "omit", "false":
		return snapshot.NoCenter(), nil
	}
	return snapshot.Center{}, fmt.Errorf("center must be a point, \"viewport\" or \"none\", got %v", param)
}

// centerSchema replaces the property type with the three accepted shapes
// of the center argument.
func centerSchema() mcp.PropertyOption {
	return func(schema map[string]any) {
		delete(schema, "type")
		schema["anyOf"] = []any{
			map[string]any{"type": "string", "enum": []string{"viewport", "none"}},
			map[string]any{"type": "boolean"},
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"latitude":  map[string]any{"type": "number"},
					"longitude": map[string]any{"type": "number"},
				},
				"required": []string{"latitude", "longitude"},
			},
		}
	}
}

func isJSONObject(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(strings.TrimSpace(s), "{")
}

// queryValue rejects values that would end a query parameter or split a
// path or marker descriptor when copied into the URL.
func queryValue(field, v string) error {
	if i := strings.IndexAny(v, "&|# \t\r\n"); i >= 0 {
		return fmt.Errorf("%s must not contain %q; percent-encode it", field, v[i])
	}
	return nil
}

// validPoint reports whether p is a valid WGS-84 coordinate.
func validPoint(p geo.Point) bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// jsonResult marshals v as the text content of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	resultBytes, err := json.Marshal(v)
	if err != nil {
		return ErrorWithGuidance(NewAPIError("Tools", CodeInternal, "Failed to generate result", "")), nil
	}
	return mcp.NewToolResultText(string(resultBytes)), nil
}
