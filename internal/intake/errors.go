package intake

import "errors"

// Domain errors for advertisement sources.
var (
	// ErrUnknownBackend is returned when the configured source backend is
	// not one of mqtt, nats or zmq.
	ErrUnknownBackend = errors.New("intake: unknown source backend")

	// ErrSourceClosed is returned when starting a source that has been closed.
	ErrSourceClosed = errors.New("intake: source closed")

	// ErrInvalidEnvelope is returned when a frame payload is not a valid
	// advertisement envelope.
	ErrInvalidEnvelope = errors.New("intake: invalid advertisement envelope")
)
