package intake

import (
	"context"
	"sync"

	"github.com/nerrad567/govee-watcher/internal/infrastructure/config"
	"github.com/nerrad567/govee-watcher/internal/infrastructure/mqtt"
)

// mqttSource receives advertisement envelopes from an MQTT broker.
//
// Gateways publish one message per frame to goveewatch/adv/<address>; the
// source subscribes with a wildcard and feeds every envelope into the event
// channel. Reconnection and re-subscription are handled by the mqtt client.
type mqttSource struct {
	cfg    config.MQTTConfig
	logger Logger

	client *mqtt.Client
	events chan Advertisement

	// mu guards closed; paho delivers messages on its own goroutines, so
	// sends must be fenced against Close.
	mu     sync.RWMutex
	closed bool
}

func newMQTTSource(cfg config.MQTTConfig, logger Logger) *mqttSource {
	return &mqttSource{
		cfg:    cfg,
		logger: logger,
		events: make(chan Advertisement, eventBufferSize),
	}
}

// Start connects to the broker and subscribes to the advertisement topic.
func (s *mqttSource) Start(_ context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return ErrSourceClosed
	}

	client, err := mqtt.Connect(s.cfg)
	if err != nil {
		return err
	}
	client.SetLogger(s.logger)
	s.client = client

	topic := s.cfg.Topic
	if topic == "" {
		topic = mqtt.Topics{}.AdvertisementWildcard()
	}

	qos := byte(s.cfg.QoS) //nolint:gosec // validated 0..2 by config
	if err := client.Subscribe(topic, qos, s.handleMessage); err != nil {
		_ = client.Close()
		return err
	}

	s.logger.Info("mqtt source started", "topic", topic)
	return nil
}

// handleMessage parses one broker message and queues the frame.
func (s *mqttSource) handleMessage(topic string, payload []byte) error {
	adv, err := parseEnvelope(payload)
	if err != nil {
		s.logger.Debug("discarding malformed envelope", "topic", topic, "error", err)
		return nil // gateways may share topics; not worth surfacing
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}

	select {
	case s.events <- adv:
	default:
		// Buffer full; the frame will be rebroadcast within seconds.
		s.logger.Debug("event buffer full, frame dropped", "address", adv.Address)
	}
	return nil
}

// Events returns the advertisement channel.
func (s *mqttSource) Events() <-chan Advertisement {
	return s.events
}

// Close disconnects from the broker and closes the event channel.
func (s *mqttSource) Close() error {
	var err error
	if s.client != nil {
		err = s.client.Close()
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
