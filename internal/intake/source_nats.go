package intake

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/nerrad567/govee-watcher/internal/infrastructure/config"
)

// natsSource receives advertisement envelopes from a NATS subject.
//
// The envelope format is identical to the MQTT transport; only the carrier
// differs. Reconnection is handled by the NATS client's built-in retry.
type natsSource struct {
	cfg    config.NATSConfig
	logger Logger

	conn   *nats.Conn
	sub    *nats.Subscription
	events chan Advertisement

	// mu guards closed; NATS delivers messages on its own goroutines.
	mu     sync.RWMutex
	closed bool
}

func newNATSSource(cfg config.NATSConfig, logger Logger) *natsSource {
	return &natsSource{
		cfg:    cfg,
		logger: logger,
		events: make(chan Advertisement, eventBufferSize),
	}
}

// Start connects to the NATS server and subscribes to the configured subject.
func (s *natsSource) Start(_ context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrSourceClosed
	}

	conn, err := nats.Connect(s.cfg.URL,
		nats.Name("goveewatch"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			s.logger.Warn("NATS connection lost", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			s.logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS %s: %w", s.cfg.URL, err)
	}
	s.conn = conn

	sub, err := conn.Subscribe(s.cfg.Subject, s.handleMessage)
	if err != nil {
		conn.Close()
		return fmt.Errorf("subscribing to %s: %w", s.cfg.Subject, err)
	}
	s.sub = sub

	s.logger.Info("nats source started", "url", s.cfg.URL, "subject", s.cfg.Subject)
	return nil
}

// handleMessage parses one NATS message and queues the frame.
func (s *natsSource) handleMessage(msg *nats.Msg) {
	adv, err := parseEnvelope(msg.Data)
	if err != nil {
		s.logger.Debug("discarding malformed envelope", "subject", msg.Subject, "error", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.events <- adv:
	default:
		s.logger.Debug("event buffer full, frame dropped", "address", adv.Address)
	}
}

// Events returns the advertisement channel.
func (s *natsSource) Events() <-chan Advertisement {
	return s.events
}

// Close unsubscribes, drains the connection and closes the event channel.
func (s *natsSource) Close() error {
	var err error
	if s.sub != nil {
		err = s.sub.Unsubscribe()
	}
	if s.conn != nil {
		s.conn.Close()
	}

	s.mu.Lock()
	alreadyClosed := s.closed
	s.closed = true
	s.mu.Unlock()

	if !alreadyClosed {
		close(s.events)
	}
	return err
}
