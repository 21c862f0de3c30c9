package intake

import (
	"context"
	"fmt"

	"github.com/nerrad567/govee-watcher/internal/infrastructure/config"
)

// eventBufferSize is the capacity of a source's event channel. Frames
// arriving while the buffer is full are dropped; sensors rebroadcast within
// seconds and only the latest reading is kept.
const eventBufferSize = 128

// Source delivers advertisement frames from one gateway transport.
//
// Start connects to the transport and begins pushing frames onto the
// Events channel. Close disconnects and closes the channel.
type Source interface {
	// Start connects and begins delivery. The context bounds connection
	// establishment, not the delivery lifetime.
	Start(ctx context.Context) error

	// Events returns the channel frames are delivered on. The channel is
	// closed by Close.
	Events() <-chan Advertisement

	// Close disconnects from the transport and closes the event channel.
	Close() error
}

// NewSource builds the advertisement source selected by cfg.Backend.
//
// Parameters:
//   - cfg: Source configuration (backend selector plus per-backend settings)
//   - logger: Logger for transport-level events
//
// Returns:
//   - Source: Unstarted source for the configured backend
//   - error: ErrUnknownBackend for an unrecognized selector
func NewSource(cfg config.SourceConfig, logger Logger) (Source, error) {
	switch cfg.Backend {
	case config.BackendMQTT:
		return newMQTTSource(cfg.MQTT, logger), nil
	case config.BackendNATS:
		return newNATSSource(cfg.NATS, logger), nil
	case config.BackendZMQ:
		return newZMQSource(cfg.ZMQ, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
