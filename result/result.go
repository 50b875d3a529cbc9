// Package result folds the two outcomes of an API call into one value so call
// sites branch on Success instead of on error returns.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Fallback messages used when the server supplies nothing readable.
const (
	GenericFailure = "Request failed"
	NetworkFailure = "Network error, please try again"
)

// Result is the outcome of one call. Exactly one of Data (Success true) or
// Error (Success false) is meaningful; Error is never empty on failure.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// OkStatus is Ok carrying the HTTP status it was derived from.
func OkStatus[T any](status int, data T) Result[T] {
	return Result[T]{Success: true, Data: data, Status: status}
}

func Fail[T any](status int, message string) Result[T] {
	if strings.TrimSpace(message) == "" {
		message = fallback(status)
	}
	return Result[T]{Success: false, Error: message, Status: status}
}

// FromError converts err into a failed Result. Only APIError contributes text;
// any other error becomes a fallback so internal detail never reaches the UI.
func FromError[T any](err error) Result[T] {
	if err == nil {
		return Fail[T](0, GenericFailure)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Fail[T](apiErr.Status, apiErr.Message())
	}
	return Fail[T](0, NetworkFailure)
}

// Map converts a successful Result's data, passing failures through.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.Success {
		return Result[U]{Success: false, Error: r.Error, Status: r.Status}
	}
	return Result[U]{Success: true, Data: fn(r.Data), Status: r.Status}
}

// Err returns nil on success and an *APIError otherwise.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return &APIError{Status: r.Status, ErrorField: r.Error}
}

// Unauthorized reports whether the failure was an authentication failure.
func (r Result[T]) Unauthorized() bool {
	return !r.Success && r.Status == http.StatusUnauthorized
}

func fallback(status int) string {
	if status == 0 {
		return NetworkFailure
	}
	return GenericFailure
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status       int    // HTTP status code
	ErrorField   string // Server-supplied "error" field
	MessageField string // Server-supplied "message" field
	DetailField  string // Server-supplied "detail" field
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message())
}

// Message prefers the server's error field, then message, then detail, then a fallback.
func (e *APIError) Message() string {
	if s := strings.TrimSpace(e.ErrorField); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.MessageField); s != "" {
		return s
	}
	if s := strings.TrimSpace(e.DetailField); s != "" {
		return s
	}
	return fallback(e.Status)
}

type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message json.RawMessage `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// ParseError builds an APIError from a response body. Bodies that are not JSON,
// or whose fields are not strings, leave the fields empty.
func ParseError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	apiErr.ErrorField = rawString(eb.Error)
	apiErr.MessageField = rawString(eb.Message)
	apiErr.DetailField = rawString(eb.Detail)
	return apiErr
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
