// Package errors provides the tagged error types returned by the client SDK.
// Every failed call surfaces as either a *TransportError (no HTTP response was
// obtained) or a *RemoteError (the backend answered with a non-success status).
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches a RemoteError for a missing record.
	ErrNotFound = stderrors.New("not found")
	// ErrUnauthorized matches a RemoteError for rejected credentials.
	ErrUnauthorized = stderrors.New("unauthorized")
	// ErrConflict matches a RemoteError for a conflicting write (e.g. duplicate username).
	ErrConflict = stderrors.New("conflict")
)

// ErrorCategory tells callers whether repeating the request could succeed.
// The SDK never retries on its own.
type ErrorCategory int

const (
	// Recoverable errors may succeed when repeated.
	// Examples: 500 Internal Server Error, network timeouts, connection failures.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors will fail again with the same input.
	// Examples: 400 Bad Request, 403 Forbidden, 404 Not Found, 409 Conflict.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// TransportError reports a request that never produced an HTTP response:
// DNS or dial failures, timeouts, or a cancelled context.
type TransportError struct {
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *TransportError) Unwrap() error { return e.Err }

// Category is always Recoverable for transport failures.
func (e *TransportError) Category() ErrorCategory { return Recoverable }

// RemoteError reports a non-success answer from the backend. Body is kept verbatim.
type RemoteError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string

	// NullBody marks a success status carrying a JSON null body, which the
	// backend uses to report a missing record.
	NullBody bool
}

const maxBodyInMessage = 512

func (e *RemoteError) Error() string {
	if e.NullBody {
		return fmt.Sprintf("%s: %s %s: HTTP %d with null body", e.Op, e.Method, e.URL, e.StatusCode)
	}
	body := e.Body
	if len(body) > maxBodyInMessage {
		body = body[:maxBodyInMessage] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s: %s %s: HTTP %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: HTTP %d: %s", e.Op, e.Method, e.URL, e.StatusCode, body)
}

// Is lets callers match status families with errors.Is.
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.NullBody || e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	}
	return false
}

// Category classifies the status code.
func (e *RemoteError) Category() ErrorCategory {
	if e.NullBody {
		return Irrecoverable
	}
	return getHTTPErrorCategory(e.StatusCode)
}

// IsTransport reports whether err carries a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return stderrors.As(err, &te)
}

// IsRemote reports whether err carries a *RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return stderrors.As(err, &re)
}

// StatusCode returns the HTTP status of a *RemoteError in err's chain, or 0.
func StatusCode(err error) int {
	var re *RemoteError
	if stderrors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}

// IsRecoverable reports whether repeating the failed call could succeed.
func IsRecoverable(err error) bool {
	var te *TransportError
	if stderrors.As(err, &te) {
		return true
	}
	var re *RemoteError
	if stderrors.As(err, &re) {
		return re.Category() == Recoverable
	}
	return false
}
