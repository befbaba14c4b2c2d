package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoSearchableData is returned when a profile has neither a name nor an email to search.
	ErrNoSearchableData = errors.New("no searchable data (empty name and email)")
	// ErrMissingProfile is returned when a relay request carries no profile record.
	ErrMissingProfile = errors.New("missing profile data")
	// ErrAlreadyScored is returned when a relay is asked to score a profile that already has a risk level.
	ErrAlreadyScored = errors.New("risk level already calculated")
)

// ConfigError reports missing required environment configuration. It is fatal:
// the caller aborts instead of retrying.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// NewConfigError creates a ConfigError for the given missing keys.
func NewConfigError(missing ...string) *ConfigError {
	return &ConfigError{Missing: missing}
}

// ValidationError reports a malformed or missing field in an upstream response.
// It is recorded per profile; the batch continues.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NetworkError reports a non-2xx status or an unparseable body from an upstream
// call. The body is carried verbatim so callers can embed it in outcome records.
type NetworkError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Body)
}

// NewNetworkError creates a NetworkError.
func NewNetworkError(endpoint string, statusCode int, body string) *NetworkError {
	return &NetworkError{Endpoint: endpoint, StatusCode: statusCode, Body: body}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	var ne *NetworkError
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROFILE_NOT_FOUND")
	case errors.Is(err, ErrMissingProfile):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_PROFILE")
	case errors.Is(err, ErrNoSearchableData):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SEARCHABLE_DATA")
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadGateway, ve.Error(), "UPSTREAM_VALIDATION_ERROR")
	case errors.As(err, &ne):
		return NewHTTPError(http.StatusBadGateway, ne.Error(), "UPSTREAM_NETWORK_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
