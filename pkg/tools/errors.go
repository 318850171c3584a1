// Package tools provides the staticsnap MCP tool implementations.
package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// APIError represents a tool failure, with information to help users
// recover.
type APIError struct {
	Service     string // The failing component (e.g., "Snapshot", "Polyline")
	Code        string // Machine-readable error code
	Message     string // Error message
	Recoverable bool   // Whether the caller can fix the request and retry
	Guidance    string // Guidance for users on how to recover
}

// Error implements the error interface and provides a formatted error message.
func (e *APIError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s error (%s): %s. %s", e.Service, e.Code, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Service, e.Code, e.Message)
}

// Error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeMissingViewport   = "MISSING_VIEWPORT"
	CodeURLTooLong        = "URL_TOO_LONG"
	CodeMalformedPolyline = "MALFORMED_POLYLINE"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL"
)

// Common error guidance messages
const (
	// Snapshot guidance
	GuidanceURLTooLong      = "Enable use_polyline_encode, remove overlays, or zoom in so fewer vertices are visible."
	GuidanceMissingViewport = "Provide a viewport object with bounds, zoom, width and height."

	// Polyline guidance
	GuidancePolyline = "Check that the string is a complete encoded polyline and was not URL-escaped."

	// Generic guidance
	GuidanceGeneral   = "Please try again later or modify your request parameters."
	GuidanceInput     = "Please correct the parameters and try again."
	GuidanceRateLimit = "Too many requests. Please try again in a few moments."
)

// NewAPIError creates a new APIError with guidance inferred from code when
// none is given.
func NewAPIError(service, code, message, guidance string) *APIError {
	if guidance == "" {
		switch code {
		case CodeURLTooLong:
			guidance = GuidanceURLTooLong
		case CodeMissingViewport:
			guidance = GuidanceMissingViewport
		case CodeMalformedPolyline:
			guidance = GuidancePolyline
		case CodeInvalidInput:
			guidance = GuidanceInput
		case CodeRateLimited:
			guidance = GuidanceRateLimit
		default:
			guidance = GuidanceGeneral
		}
	}

	return &APIError{
		Service:     service,
		Code:        code,
		Message:     message,
		Recoverable: code != CodeInternal,
		Guidance:    guidance,
	}
}

// ErrorWithGuidance returns a properly formatted error response with user guidance.
func ErrorWithGuidance(err *APIError) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s\n\nGuidance: %s", err.Message, err.Guidance)
	return mcp.NewToolResultError(errorText)
}

// InvalidParam reports an argument that could not be parsed.
func InvalidParam(name string, err error) *APIError {
	return NewAPIError("Validation", CodeInvalidInput, fmt.Sprintf("Invalid %s: %v", name, err), "")
}

// ValidationError creates an error for invalid coordinate or radius parameters.
func ValidationError(lat, lon, radius float64, maxRadius float64) *APIError {
	var message string

	if lat < -90 || lat > 90 {
		message = fmt.Sprintf("Invalid latitude value: %f (must be between -90 and 90)", lat)
	} else if lon < -180 || lon > 180 {
		message = fmt.Sprintf("Invalid longitude value: %f (must be between -180 and 180)", lon)
	} else if radius <= 0 {
		message = "Radius must be greater than 0"
	} else if radius > maxRadius {
		message = fmt.Sprintf("Radius too large: %f (maximum allowed is %f meters)", radius, maxRadius)
	} else {
		message = "Invalid parameters"
	}

	return NewAPIError("Validation", CodeInvalidInput, message, "")
}

// ErrorResponse is used for consistent error reporting
func ErrorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}
