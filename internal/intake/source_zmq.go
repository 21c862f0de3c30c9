package intake

import (
	"context"
	"fmt"

	zmq "github.com/go-zeromq/zmq4"

	"github.com/nerrad567/govee-watcher/internal/infrastructure/config"
)

// zmqSource receives advertisement envelopes over a ZeroMQ SUB socket.
//
// One receive goroutine owns the socket and is the only sender on the event
// channel; Close cancels it before the channel is closed.
type zmqSource struct {
	cfg    config.ZMQSourceConfig
	logger Logger

	sock   zmq.Socket
	cancel context.CancelFunc
	done   chan struct{}
	events chan Advertisement
	closed bool
}

func newZMQSource(cfg config.ZMQSourceConfig, logger Logger) *zmqSource {
	return &zmqSource{
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
		events: make(chan Advertisement, eventBufferSize),
	}
}

// Start dials the gateway's PUB endpoint and begins receiving frames.
func (s *zmqSource) Start(ctx context.Context) error {
	recvCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	sock := zmq.NewSub(recvCtx)
	if err := sock.Dial(s.cfg.Endpoint); err != nil {
		cancel()
		return fmt.Errorf("dialing %s: %w", s.cfg.Endpoint, err)
	}
	if err := sock.SetOption(zmq.OptionSubscribe, ""); err != nil {
		_ = sock.Close()
		cancel()
		return fmt.Errorf("subscribing: %w", err)
	}
	s.sock = sock

	go s.recvLoop(recvCtx)

	s.logger.Info("zmq source started", "endpoint", s.cfg.Endpoint)
	return nil
}

// recvLoop receives messages until the socket context is cancelled.
func (s *zmqSource) recvLoop(ctx context.Context) {
	defer close(s.done)

	for {
		msg, err := s.sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("zmq receive failed", "error", err)
			continue
		}
		if len(msg.Frames) == 0 {
			continue
		}

		adv, err := parseEnvelope(msg.Frames[0])
		if err != nil {
			s.logger.Debug("discarding malformed envelope", "error", err)
			continue
		}

		select {
		case s.events <- adv:
		default:
			s.logger.Debug("event buffer full, frame dropped", "address", adv.Address)
		}
	}
}

// Events returns the advertisement channel.
func (s *zmqSource) Events() <-chan Advertisement {
	return s.events
}

// Close stops the receive loop, closes the socket and the event channel.
func (s *zmqSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.cancel != nil {
		s.cancel()
	}
	if s.sock != nil {
		err = s.sock.Close()
		<-s.done
	}
	close(s.events)
	return err
}
