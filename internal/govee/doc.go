// Package govee decodes Govee BLE advertisement payloads into sensor readings.
//
// Govee temperature/humidity sensors broadcast their current state as
// manufacturer-specific data inside BLE advertisement frames. Each supported
// model uses its own binary layout and, notably, its own negative-number
// convention:
//
//   - H5179: temperature and humidity are separate little-endian int16
//     fields (standard two's-complement), scaled by 1/100.
//   - H5072: temperature and humidity are packed into a single 24-bit
//     big-endian integer; negative temperatures are flagged by bit 0x800000
//     and recovered by clearing that bit (sign-flag convention, NOT
//     two's-complement), scaled by 1/10000.
//
// The two layouts are deliberately kept as independent decode paths. They
// differ in field packing, sign convention and scale factor, and collapsing
// them into one "generic" decoder has historically produced subtle sign
// bugs in other implementations.
//
// # Usage
//
//	reading, err := govee.Decode(govee.ModelH5179, companyID, payload)
//	if err != nil {
//	    return err // malformed or foreign advertisement, drop it
//	}
//
// Decode is pure and stateless: it performs no I/O and never stamps
// timestamps. Callers assign Reading.ObservedAt at ingest time.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package govee
