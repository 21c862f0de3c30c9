package intake

import (
	"context"
	"errors"
	"time"

	"github.com/nerrad567/govee-watcher/internal/device"
	"github.com/nerrad567/govee-watcher/internal/govee"
	"github.com/nerrad567/govee-watcher/internal/metrics"
)

// Advertisement is one raw frame as delivered by a gateway.
type Advertisement struct {
	// Address is the broadcasting device's hardware address, in whatever
	// spelling the gateway used.
	Address string

	// CompanyID is the manufacturer identifier keying the payload.
	CompanyID uint16

	// Data is the raw manufacturer data bytes.
	Data []byte
}

// Logger defines the logging interface used by the Intake.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Intake filters, decodes and stores advertisement frames.
//
// It is the single producer into the store. Run consumes the event channel
// in one goroutine and never blocks on client I/O; the store's Upsert is a
// short critical section.
type Intake struct {
	registry *device.Registry
	store    *device.Store
	logger   Logger

	// now is the clock used to stamp ObservedAt; replaceable in tests.
	now func() time.Time
}

// New creates an intake writing to store, accepting only devices in registry.
func New(registry *device.Registry, store *device.Store) *Intake {
	return &Intake{
		registry: registry,
		store:    store,
		logger:   noopLogger{},
		now:      time.Now,
	}
}

// SetLogger sets the logger for the intake.
func (in *Intake) SetLogger(logger Logger) {
	in.logger = logger
}

// Run consumes advertisement events until ctx is cancelled or the channel
// is closed. It must be the only consumer of events.
func (in *Intake) Run(ctx context.Context, events <-chan Advertisement) {
	for {
		select {
		case <-ctx.Done():
			return
		case adv, ok := <-events:
			if !ok {
				return
			}
			in.handle(adv)
		}
	}
}

// handle processes one frame: normalize, filter, decode, stamp, store.
// All failure modes drop the frame silently; noisy broadcast traffic is
// expected and never fatal.
func (in *Intake) handle(adv Advertisement) {
	metrics.AdvertisementsReceived.Inc()

	address, err := govee.NormalizeAddress(adv.Address)
	if err != nil {
		metrics.DecodeFailures.WithLabelValues(metrics.ReasonBadAddress).Inc()
		in.logger.Debug("frame dropped: unparseable address", "address", adv.Address)
		return
	}

	model, ok := in.registry.Lookup(address)
	if !ok {
		metrics.UnknownAddressDrops.Inc()
		return
	}

	reading, err := govee.Decode(model, adv.CompanyID, adv.Data)
	if err != nil {
		metrics.DecodeFailures.WithLabelValues(decodeFailureReason(err)).Inc()
		in.logger.Debug("frame dropped: decode failed",
			"address", address,
			"model", string(model),
			"error", err,
		)
		return
	}

	reading.ObservedAt = in.now().UTC()
	in.store.Upsert(address, reading)

	metrics.AdvertisementsDecoded.WithLabelValues(string(model)).Inc()
	metrics.ObserveReading(address,
		reading.TemperatureCelsius,
		reading.RelativeHumidityPercent,
		reading.BatteryPercent,
	)

	in.logger.Debug("reading stored",
		"address", address,
		"temperature", reading.TemperatureCelsius,
		"humidity", reading.RelativeHumidityPercent,
		"battery", reading.BatteryPercent,
	)
}

// decodeFailureReason maps decode errors to metric labels.
func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, govee.ErrPayloadTooShort):
		return metrics.ReasonShortPayload
	default:
		return metrics.ReasonCompanyID
	}
}
