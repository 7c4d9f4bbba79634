package notesdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is the typed form of the error envelope. It is shared by the
// server handlers (to write responses) and the SDK client (to surface them).
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Message is the human-readable error text.
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: e.Message})
}

var (
	// ErrInvalidBody is returned when the request body is not valid JSON.
	ErrInvalidBody = &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "Invalid request body.",
	}

	// ErrUnauthorized is returned when the session cookie is missing or the
	// token inside it fails verification.
	ErrUnauthorized = &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    "Unauthorized.",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    "An error occurred while processing your request.",
	}
)

// NewAPIError creates an APIError with the given status and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// parseErrorResponse turns a non-2xx HTTP response into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
