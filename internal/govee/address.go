package govee

import (
	"fmt"
	"regexp"
	"strings"
)

// addressPattern matches a 48-bit hardware address in colon-hex
// ("E0:13:D5:71:D0:66") or bare-hex ("E013D571D066") form, case-insensitive.
var addressPattern = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$|^[0-9A-Fa-f]{12}$`)

// addressOctets is the number of octets in a 48-bit hardware address.
const addressOctets = 6

// NormalizeAddress converts a device address to canonical form: uppercase
// hex octets separated by colons.
//
// Both colon-hex and bare-hex input are accepted. Sensor addresses arrive
// from scanners in colon form but status clients frequently type them
// without separators, so both spellings must resolve to the same key.
//
// Parameters:
//   - addr: Address text in colon-hex or bare-hex form
//
// Returns:
//   - string: Canonical uppercase colon-hex address
//   - error: ErrInvalidAddress if the text is not a 48-bit address
func NormalizeAddress(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if !addressPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}

	hex := strings.ToUpper(strings.ReplaceAll(trimmed, ":", ""))
	parts := make([]string, 0, addressOctets)
	for i := 0; i < len(hex); i += 2 {
		parts = append(parts, hex[i:i+2])
	}
	return strings.Join(parts, ":"), nil
}
