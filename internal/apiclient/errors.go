package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// DefaultErrorMessage is reported when a failed response carries no usable
// detail field.
const DefaultErrorMessage = "An error occurred"

var (
	ErrInvalidJSON = errors.New("response declared JSON but body is not valid JSON")
	ErrNotJSON     = errors.New("response body is not JSON")
)

// HTTPStatusError is a non-2xx response from the backend.
type HTTPStatusError struct {
	Code    int
	Message string
}

func (e *HTTPStatusError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure: DNS, refused connection, reset or
// a cancelled context.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is raised before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// detailMessage extracts the backend's "detail" field. FastAPI reports
// request validation failures as a list of {loc, msg, type} items.
func detailMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return DefaultErrorMessage
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		if s == "" {
			return DefaultErrorMessage
		}
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	return DefaultErrorMessage
}
