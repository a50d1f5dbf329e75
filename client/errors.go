package client

import (
	clienterrors "github.com/kachalmers/tuiter/client/internal/errors"
)

// Re-export the tagged error types so callers compare against a single symbol.
type (
	// TransportError: no HTTP response was obtained.
	TransportError = clienterrors.TransportError
	// RemoteError: the backend answered with a non-success status.
	RemoteError = clienterrors.RemoteError
)

var (
	ErrNotFound     = clienterrors.ErrNotFound
	ErrUnauthorized = clienterrors.ErrUnauthorized
	ErrConflict     = clienterrors.ErrConflict
)

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool { return clienterrors.IsTransport(err) }

// IsRemote reports whether err is a non-success backend response.
func IsRemote(err error) bool { return clienterrors.IsRemote(err) }

// StatusCode returns the HTTP status carried by err, or 0 for non-remote errors.
func StatusCode(err error) int { return clienterrors.StatusCode(err) }

// IsRecoverable reports whether repeating the failed call could succeed.
// The client never retries on its own.
func IsRecoverable(err error) bool { return clienterrors.IsRecoverable(err) }
