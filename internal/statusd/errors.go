package statusd

import "errors"

// Domain errors for the status server.
var (
	// ErrAlreadyStarted is returned when Start is called on a running server.
	ErrAlreadyStarted = errors.New("statusd: server already started")

	// ErrNotStarted is returned when an operation requires a running server.
	ErrNotStarted = errors.New("statusd: server not started")
)
