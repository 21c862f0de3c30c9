package govee

import (
	"encoding/binary"
	"fmt"
)

// Layout constants for the two payload encodings.
const (
	// h5179PayloadBytes is the minimum manufacturer data length for H5179.
	// The reading occupies the trailing five bytes.
	h5179PayloadBytes = 5

	// h5072PayloadBytes is the minimum manufacturer data length for H5072.
	// The packed integer sits at offsets 1..3, battery at offset 4.
	h5072PayloadBytes = 5

	// h5072SignBit flags a negative temperature in the H5072 packed
	// integer. The magnitude is recovered by clearing the bit, which is
	// NOT two's-complement.
	h5072SignBit = 0x800000

	// h5179Scale divides the raw H5179 temperature/humidity fields.
	h5179Scale = 100

	// h5072TempScale divides the H5072 packed integer to yield °C.
	h5072TempScale = 10000

	// h5072HumModulus extracts the humidity digits from the packed integer.
	h5072HumModulus = 1000
)

// Decode translates raw manufacturer data into a Reading.
//
// The frame is rejected when companyID is not the vendor identifier the
// model broadcasts under, or when data is shorter than the model's layout
// requires. Decode never panics on arbitrary input.
//
// Parameters:
//   - model: Device model tag selecting the payload layout
//   - companyID: Manufacturer identifier from the advertisement
//   - data: Raw manufacturer data bytes keyed by that identifier
//
// Returns:
//   - Reading: Decoded values with zero ObservedAt (caller stamps it)
//   - error: ErrUnknownModel, ErrCompanyIDMismatch or ErrPayloadTooShort
func Decode(model Model, companyID uint16, data []byte) (Reading, error) {
	switch model {
	case ModelH5179:
		return decodeH5179(companyID, data)
	case ModelH5072:
		return decodeH5072(companyID, data)
	default:
		return Reading{}, fmt.Errorf("%w: %q", ErrUnknownModel, string(model))
	}
}

// decodeH5179 decodes the H5179 layout.
//
// The reading is the trailing five bytes of the manufacturer data:
//
//	byte 0-1: temperature, int16 little-endian, 1/100 °C
//	byte 2-3: humidity, int16 little-endian, 1/100 %
//	byte 4:   battery, uint8 %
//
// Negative values are standard two's-complement int16.
func decodeH5179(companyID uint16, data []byte) (Reading, error) {
	if companyID != CompanyIDH5179 {
		return Reading{}, fmt.Errorf("%w: H5179 expects %d, got %d",
			ErrCompanyIDMismatch, CompanyIDH5179, companyID)
	}
	if len(data) < h5179PayloadBytes {
		return Reading{}, fmt.Errorf("%w: H5179 requires %d bytes, got %d",
			ErrPayloadTooShort, h5179PayloadBytes, len(data))
	}

	tail := data[len(data)-h5179PayloadBytes:]
	rawTemp := int16(binary.LittleEndian.Uint16(tail[0:2])) //nolint:gosec // two's-complement reinterpretation is the wire format
	rawHum := int16(binary.LittleEndian.Uint16(tail[2:4]))  //nolint:gosec // two's-complement reinterpretation is the wire format

	return Reading{
		TemperatureCelsius:      float64(rawTemp) / h5179Scale,
		RelativeHumidityPercent: float64(rawHum) / h5179Scale,
		BatteryPercent:          tail[4],
	}, nil
}

// decodeH5072 decodes the H5072 layout.
//
// Bytes 1..3 form a single 24-bit big-endian integer carrying both
// temperature and humidity:
//
//	temperature: packet / 10000 °C, negative when bit 0x800000 is set,
//	             in which case the magnitude is (packet ^ 0x800000) and
//	             the sign is applied by dividing by -10000
//	humidity:    (packet % 1000) / 10 %
//	battery:     byte 4, uint8 %
func decodeH5072(companyID uint16, data []byte) (Reading, error) {
	if companyID != CompanyIDH5072 {
		return Reading{}, fmt.Errorf("%w: H5072 expects %d, got %d",
			ErrCompanyIDMismatch, CompanyIDH5072, companyID)
	}
	if len(data) < h5072PayloadBytes {
		return Reading{}, fmt.Errorf("%w: H5072 requires %d bytes, got %d",
			ErrPayloadTooShort, h5072PayloadBytes, len(data))
	}

	packet := uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])

	var temp float64
	if packet&h5072SignBit != 0 {
		temp = float64(packet^h5072SignBit) / -h5072TempScale
	} else {
		temp = float64(packet) / h5072TempScale
	}

	return Reading{
		TemperatureCelsius:      temp,
		RelativeHumidityPercent: float64(packet%h5072HumModulus) / 10,
		BatteryPercent:          data[4],
	}, nil
}
