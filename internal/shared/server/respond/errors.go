package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parser-backend/internal/shared/telemetry"
)

// ErrorNameUnexpected is the catch-all name for unclassified failures.
const ErrorNameUnexpected = "UNEXPECTED_ERROR"

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Name    string      `json:"name"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, name string, details interface{}) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"name":       name,
		"details":    details,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Name:    name,
			Details: details,
		},
	})
}

// Unexpected wraps an unclassified error into the UNEXPECTED_ERROR response.
// Only the error message leaks to the wire; the full error is logged.
func Unexpected(c *gin.Context, err error) {
	Error(c, http.StatusInternalServerError, ErrorNameUnexpected, err.Error())
}
