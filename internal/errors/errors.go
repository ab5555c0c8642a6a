package errors

import (
	"errors"
	"fmt"
)

// This package defines a centralized set of sentinel errors for the application.
// Components return these (usually wrapped with context) and the API layer uses
// `errors.Is()` to map them to HTTP responses without knowing which component
// produced them.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation conflicts with the current state
	// of a resource.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the platform or user refused access, e.g.
	// microphone or geolocation permission was denied.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrUnsupported signifies that a platform capability (speech recognition,
	// speech synthesis, geolocation) is not available.
	// This is typically mapped to a 501 Not Implemented HTTP status.
	ErrUnsupported = errors.New("capability not supported")

	// ErrBusy signifies that a chat request is already in flight. It wraps
	// ErrConflict so callers that only know the generic sentinel still match.
	ErrBusy = fmt.Errorf("a message is already being sent: %w", ErrConflict)

	// ErrNoActiveSession signifies that an operation needs an active chat
	// session and none is selected.
	ErrNoActiveSession = fmt.Errorf("no active session: %w", ErrConflict)
)

