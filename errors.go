package runpod

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies where a failure happened.
type ErrorKind string

const (
	// KindConfig is a missing or invalid setting, detected before any network call.
	KindConfig ErrorKind = "config"

	// KindInvalidRequest is a caller argument rejected before any network call,
	// such as an empty resource ID or an input that fails validation.
	KindInvalidRequest ErrorKind = "invalid_request"

	// KindTransport is a connection, TLS, timeout or cancellation failure.
	// The server may or may not have seen the request.
	KindTransport ErrorKind = "transport"

	// KindAPI is a non-2xx response from the server.
	KindAPI ErrorKind = "api"

	// KindDecode is a response body that does not match the expected shape.
	KindDecode ErrorKind = "decode"
)

// Error represents a RunPod SDK error.
//
// Every method of the SDK returns either nil or an error that can be
// unwrapped into *Error:
//
//	pod, err := client.Pods().Get(ctx, "pod-123", nil)
//	if err != nil {
//	    var apiErr *runpod.Error
//	    if errors.As(err, &apiErr) && apiErr.Kind == runpod.KindAPI {
//	        log.Printf("server said %d: %s", apiErr.Status, apiErr.Message)
//	    }
//	}
type Error struct {
	// Kind tells which stage failed.
	Kind ErrorKind

	// Op is the operation that failed, e.g. "pods.get".
	Op string

	// Code is a machine readable code. For API errors it is the server's code
	// when present, otherwise derived from the HTTP status (e.g. "NOT_FOUND").
	Code string

	// Message is a human readable description.
	Message string

	// Status is the HTTP status code for API errors, 0 otherwise.
	Status int

	// Body holds the raw (truncated) response body for API and decode errors.
	Body string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("runpod: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, "%s (%d): %s", e.Code, e.Status, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel matching this error. A sentinel
// matches on Kind, and on Status when the sentinel carries one.
//
//	if errors.Is(err, runpod.ErrNotFound) { ... }
//	if errors.Is(err, runpod.ErrTransport) { ... }
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

// Sentinel errors.
var (
	ErrNotFound     = &Error{Kind: KindAPI, Code: "NOT_FOUND", Message: "resource not found", Status: http.StatusNotFound}
	ErrUnauthorized = &Error{Kind: KindAPI, Code: "UNAUTHORIZED", Message: "invalid credentials", Status: http.StatusUnauthorized}
	ErrForbidden    = &Error{Kind: KindAPI, Code: "FORBIDDEN", Message: "access denied", Status: http.StatusForbidden}
	ErrBadRequest   = &Error{Kind: KindAPI, Code: "BAD_REQUEST", Message: "invalid request", Status: http.StatusBadRequest}
	ErrConflict     = &Error{Kind: KindAPI, Code: "CONFLICT", Message: "resource conflict", Status: http.StatusConflict}
	ErrRateLimited  = &Error{Kind: KindAPI, Code: "RATE_LIMITED", Message: "too many requests", Status: http.StatusTooManyRequests}
	ErrInternal     = &Error{Kind: KindAPI, Code: "INTERNAL", Message: "internal server error", Status: http.StatusInternalServerError}

	ErrConfig         = &Error{Kind: KindConfig, Code: "CONFIG", Message: "invalid configuration"}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest, Code: "INVALID_REQUEST", Message: "invalid request"}
	ErrTransport      = &Error{Kind: KindTransport, Code: "TRANSPORT", Message: "request failed"}
	ErrAPI            = &Error{Kind: KindAPI, Code: "API", Message: "api error"}
	ErrDecode         = &Error{Kind: KindDecode, Code: "DECODE", Message: "invalid response body"}
)

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

// IsTransport reports whether err happened before a response was received.
func IsTransport(err error) bool { return errors.Is(err, ErrTransport) }

func newError(kind ErrorKind, op, code, message string, status int, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Code:    code,
		Message: message,
		Status:  status,
		Cause:   cause,
	}
}

func configError(message string, cause error) *Error {
	return newError(KindConfig, "config", "CONFIG", message, 0, cause)
}

func invalidRequest(op, message string, cause error) *Error {
	return newError(KindInvalidRequest, op, "INVALID_REQUEST", message, 0, cause)
}

// apiErrorBody covers the error envelopes returned by the REST, serverless
// and GraphQL APIs.
type apiErrorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
	Status  int             `json:"status"`
}

// apiError builds a KindAPI error from a non-2xx response. The body is parsed
// as a structured error when possible, otherwise kept raw.
func apiError(op string, status int, body []byte) *Error {
	e := &Error{
		Kind:   KindAPI,
		Op:     op,
		Status: status,
		Body:   truncate(body, maxErrorBodySize),
	}

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		e.Message = parsed.Message
		if msg := rawString(parsed.Error); msg != "" {
			if e.Message == "" {
				e.Message = msg
			} else if e.Message != msg {
				e.Message = msg + ": " + e.Message
			}
		}
		e.Code = rawString(parsed.Code)
	}

	if e.Code == "" {
		e.Code = codeForStatus(status)
	}
	if e.Message == "" {
		if raw := strings.TrimSpace(e.Body); raw != "" {
			e.Message = raw
		} else {
			e.Message = strings.ToLower(http.StatusText(status))
		}
	}
	return e
}

// rawString renders a JSON string or number as plain text. Objects are kept
// as compact JSON.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
		return nested.Message
	}
	return string(raw)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "UNPROCESSABLE_ENTITY"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return fmt.Sprintf("HTTP_%d", status)
}

func truncate(body []byte, limit int) string {
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}
