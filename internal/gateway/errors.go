package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a failed API call
type Kind string

// Error implements error so a Kind can be used as an errors.Is target
func (k Kind) Error() string {
	return string(k)
}

// Failure kinds
const (
	// NetworkFailure means no response was received
	NetworkFailure Kind = "network failure"
	// Unauthorized means the credential was missing, invalid or expired (401)
	Unauthorized Kind = "unauthorized"
	// ValidationFailure means the request was rejected (4xx) with an error body
	ValidationFailure Kind = "validation failure"
	// ServerFailure means the API failed (5xx) or answered with an unreadable body
	ServerFailure Kind = "server failure"
)

// GenericMessage is shown for failures the user can only retry
const GenericMessage = "Something went wrong. Please try again."

// nonFieldKey is the key the API uses for errors not tied to one field
const nonFieldKey = "non_field_errors"

// Error is a failed API call
type Error struct {
	Kind   Kind
	Status int
	// Detail is the API's single error message, if it sent one
	Detail string
	// Fields maps field names to their error messages
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	switch {
	case e.Detail != "":
		b.WriteString(": " + e.Detail)
	case len(e.Fields) > 0:
		b.WriteString(": " + strings.ReplaceAll(e.FieldMessage(), "\n", "; "))
	case e.Err != nil:
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a Kind target
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// FieldMessage joins field errors as "field: message" lines.
// Errors not tied to a field come first, without a prefix.
func (e *Error) FieldMessage() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		if k != nonFieldKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(e.Fields))
	if msgs, ok := e.Fields[nonFieldKey]; ok {
		lines = append(lines, strings.Join(msgs, ", "))
	}
	for _, k := range keys {
		lines = append(lines, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return strings.Join(lines, "\n")
}

// UserMessage returns the text to display for a failed call.
// Rejections show the API's own message; failures the user can only retry show
// GenericMessage; anything without a message falls back to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ge *Error
	if !errors.As(err, &ge) {
		return GenericMessage
	}

	switch ge.Kind {
	case Unauthorized, ValidationFailure:
		if ge.Detail != "" {
			return ge.Detail
		}
		if len(ge.Fields) > 0 {
			return ge.FieldMessage()
		}
		return fallback
	default:
		return GenericMessage
	}
}

// newStatusError builds an Error from a non-2xx response
func newStatusError(status int, body []byte) *Error {
	e := &Error{Status: status}
	switch {
	case status == http.StatusUnauthorized:
		e.Kind = Unauthorized
	case status >= 500:
		e.Kind = ServerFailure
	default:
		e.Kind = ValidationFailure
	}
	e.Detail, e.Fields = parseErrorBody(body)
	if e.Kind == ServerFailure {
		// 5xx bodies are often HTML pages, never show them
		e.Detail = ""
		e.Fields = nil
	}
	return e
}

// parseErrorBody extracts a detail message or field errors from an error body.
// Accepted shapes: {"detail": "..."}, {"field": ["..."]}, ["..."], "...".
func parseErrorBody(body []byte) (string, map[string][]string) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", nil
	}

	switch v := raw.(type) {
	case string:
		return v, nil
	case []any:
		return "", map[string][]string{nonFieldKey: messages(v)}
	case map[string]any:
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s, nil
			}
		}
		fields := make(map[string][]string, len(v))
		for k, val := range v {
			if msgs := messages(val); len(msgs) > 0 {
				fields[k] = msgs
			}
		}
		if len(fields) == 0 {
			return "", nil
		}
		return "", fields
	}
	return "", nil
}

func messages(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, messages(item)...)
		}
		return out
	case nil:
		return nil
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return []string{string(data)}
	}
}
