package govee

import (
	"errors"
	"testing"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "E0:13:D5:71:D0:66", "E0:13:D5:71:D0:66"},
		{"lowercase colon-hex", "e0:13:d5:71:d0:66", "E0:13:D5:71:D0:66"},
		{"bare hex", "E013D571D066", "E0:13:D5:71:D0:66"},
		{"lowercase bare hex", "a4c13882a288", "A4:C1:38:82:A2:88"},
		{"surrounding whitespace", "  e0:13:d5:71:d0:66 ", "E0:13:D5:71:D0:66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAddress(tt.in)
			if err != nil {
				t.Fatalf("NormalizeAddress(%q) error = %v, want nil", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddressRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", "E0:13:D5"},
		{"too long", "E0:13:D5:71:D0:66:AA"},
		{"non-hex", "G0:13:D5:71:D0:66"},
		{"odd bare length", "E013D571D06"},
		{"mixed separators", "E0-13-D5-71-D0-66"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizeAddress(tt.in); !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("NormalizeAddress(%q) error = %v, want %v", tt.in, err, ErrInvalidAddress)
			}
		})
	}
}
