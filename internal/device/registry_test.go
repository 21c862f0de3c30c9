package device

import (
	"errors"
	"testing"

	"github.com/nerrad567/govee-watcher/internal/govee"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(map[string]string{
		"e0:13:d5:71:d0:66": "H5179",
		"A4C13882A288":      "H5072",
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v, want nil", err)
	}

	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}

	model, ok := reg.Lookup("E0:13:D5:71:D0:66")
	if !ok || model != govee.ModelH5179 {
		t.Errorf("Lookup(E0:...) = %q, %v, want H5179, true", model, ok)
	}

	model, ok = reg.Lookup("A4:C1:38:82:A2:88")
	if !ok || model != govee.ModelH5072 {
		t.Errorf("Lookup(A4:...) = %q, %v, want H5072, true", model, ok)
	}

	if _, ok := reg.Lookup("00:00:00:00:00:00"); ok {
		t.Error("Lookup(unregistered) = true, want false")
	}

	want := []string{"A4:C1:38:82:A2:88", "E0:13:D5:71:D0:66"}
	got := reg.Addresses()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Addresses() = %v, want %v", got, want)
	}
}

func TestNewRegistryRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]string
		wantErr error
	}{
		{"empty", map[string]string{}, ErrEmptyRegistry},
		{"nil", nil, ErrEmptyRegistry},
		{"bad address", map[string]string{"not-a-mac": "H5179"}, govee.ErrInvalidAddress},
		{"bad model", map[string]string{"E0:13:D5:71:D0:66": "H5075"}, govee.ErrUnknownModel},
		{
			"duplicate after normalization",
			map[string]string{
				"E0:13:D5:71:D0:66": "H5179",
				"e013d571d066":      "H5072",
			},
			ErrDuplicateAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.entries); !errors.Is(err, tt.wantErr) {
				t.Errorf("NewRegistry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
