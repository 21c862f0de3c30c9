package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decode failure reason labels.
const (
	ReasonShortPayload = "short_payload"
	ReasonCompanyID    = "company_id_mismatch"
	ReasonBadAddress   = "bad_address"
)

// AdvertisementsReceived counts every frame delivered by the source,
// including foreign traffic that is later dropped.
var AdvertisementsReceived = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "goveewatch_advertisements_received_total",
		Help: "The total number of advertisement frames received from the source",
	},
)

// AdvertisementsDecoded counts frames that decoded into a reading, labeled
// by device model.
var AdvertisementsDecoded = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "goveewatch_advertisements_decoded_total",
		Help: "The total number of advertisements decoded into readings",
	},
	[]string{"model"},
)

// DecodeFailures counts frames that failed to decode, labeled by reason.
var DecodeFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "goveewatch_decode_failures_total",
		Help: "The total number of advertisement frames that failed to decode",
	},
	[]string{"reason"},
)

// UnknownAddressDrops counts frames from devices outside the registry.
// This is not an error; broadcast traffic is expected to be mostly foreign.
var UnknownAddressDrops = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "goveewatch_unknown_address_drops_total",
		Help: "The total number of frames dropped because the address is not registered",
	},
)

// StatusRequests counts status protocol commands served, labeled by kind
// (all, single, malformed).
var StatusRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "goveewatch_status_requests_total",
		Help: "The total number of status protocol commands received",
	},
	[]string{"kind"},
)

// OpenConnections tracks currently open status protocol connections.
var OpenConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "goveewatch_status_open_connections",
		Help: "The number of currently open status protocol connections",
	},
)

// Temperature is the gauge of the last decoded temperature per device.
var Temperature = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "goveewatch_temperature_celsius",
		Help: "Last decoded temperature per device",
	},
	[]string{"address"},
)

// Humidity is the gauge of the last decoded relative humidity per device.
var Humidity = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "goveewatch_humidity_percent",
		Help: "Last decoded relative humidity per device",
	},
	[]string{"address"},
)

// Battery is the gauge of the last decoded battery level per device.
var Battery = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "goveewatch_battery_percent",
		Help: "Last decoded battery level per device",
	},
	[]string{"address"},
)

// ObserveReading updates the per-device gauges after a successful decode.
func ObserveReading(address string, temperature, humidity float64, battery uint8) {
	Temperature.WithLabelValues(address).Set(temperature)
	Humidity.WithLabelValues(address).Set(humidity)
	Battery.WithLabelValues(address).Set(float64(battery))
}
