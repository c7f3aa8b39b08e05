package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/buitransport/internal/gateway"
)

// APIError represents an API error response
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeRejected            = "REJECTED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError maps gateway failures onto this API's statuses. The message is the
// same text the web pages would show.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ge *gateway.Error
	if !errors.As(err, &ge) {
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}

	msg := gateway.UserMessage(err, "Request failed")
	switch ge.Kind {
	case gateway.Unauthorized:
		return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: msg}}
	case gateway.ValidationFailure:
		status := ge.Status
		if status < 400 || status > 499 {
			status = http.StatusBadRequest
		}
		return &httpError{status, APIError{Code: CodeRejected, Message: msg, Fields: ge.Fields}}
	case gateway.NetworkFailure:
		return &httpError{http.StatusBadGateway, APIError{Code: CodeUpstreamUnavailable, Message: msg}}
	default:
		return &httpError{http.StatusBadGateway, APIError{Code: CodeUpstreamError, Message: msg}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
