package govee

import (
	"fmt"
	"time"
)

// Model identifies a supported Govee sensor model.
type Model string

// Supported models.
const (
	// ModelH5179 uses separate little-endian int16 temperature/humidity
	// fields in the trailing five payload bytes.
	ModelH5179 Model = "H5179"

	// ModelH5072 packs temperature and humidity into one 24-bit big-endian
	// integer with a sign-flag negative convention.
	ModelH5072 Model = "H5072"
)

// Manufacturer (company) identifiers as they appear in the BLE
// advertisement manufacturer data. Each model only ever broadcasts under
// its own identifier; a mismatch means the frame belongs to another vendor.
const (
	CompanyIDH5179 uint16 = 34817
	CompanyIDH5072 uint16 = 60552
)

// ParseModel converts a string to a Model.
//
// Returns ErrUnknownModel for unsupported values.
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case ModelH5179:
		return ModelH5179, nil
	case ModelH5072:
		return ModelH5072, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
	}
}

// CompanyID returns the manufacturer identifier the model broadcasts under.
func (m Model) CompanyID() (uint16, error) {
	switch m {
	case ModelH5179:
		return CompanyIDH5179, nil
	case ModelH5072:
		return CompanyIDH5072, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownModel, string(m))
	}
}

// Reading is one decoded sensor observation.
//
// A Reading is produced atomically by Decode and replaced wholesale in the
// state store; it is never partially updated. ObservedAt is assigned by the
// ingest path at decode time, not by Decode itself.
type Reading struct {
	// TemperatureCelsius is the ambient temperature in °C.
	TemperatureCelsius float64

	// RelativeHumidityPercent is the relative humidity, 0-100.
	RelativeHumidityPercent float64

	// BatteryPercent is the sensor battery level, 0-100.
	BatteryPercent uint8

	// ObservedAt is the UTC time the advertisement was decoded.
	ObservedAt time.Time
}
