package govee

import "errors"

// Domain errors for advertisement decoding.
var (
	// ErrUnknownModel is returned when the model tag is not a supported
	// Govee model.
	ErrUnknownModel = errors.New("govee: unknown device model")

	// ErrCompanyIDMismatch is returned when the advertisement's manufacturer
	// identifier does not match the expected vendor identifier for the model.
	ErrCompanyIDMismatch = errors.New("govee: company identifier mismatch")

	// ErrPayloadTooShort is returned when the manufacturer data is shorter
	// than the model's layout requires.
	ErrPayloadTooShort = errors.New("govee: payload too short")

	// ErrInvalidAddress is returned when a device address cannot be parsed
	// as a 48-bit hardware address.
	ErrInvalidAddress = errors.New("govee: invalid device address")
)
