package device

import "errors"

// Domain errors for the device registry.
var (
	// ErrDuplicateAddress is returned when the same address is registered twice.
	ErrDuplicateAddress = errors.New("device: duplicate address in registry")

	// ErrEmptyRegistry is returned when a registry is built with no devices.
	ErrEmptyRegistry = errors.New("device: registry has no devices")
)
