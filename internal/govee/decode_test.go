package govee

import (
	"errors"
	"math"
	"testing"
)

// h5179Payload builds an H5179 manufacturer data blob with the reading in
// the trailing five bytes, prefixed by arbitrary vendor bytes.
func h5179Payload(prefix []byte, rawTemp, rawHum uint16, bat uint8) []byte {
	data := append([]byte{}, prefix...)
	data = append(data,
		byte(rawTemp), byte(rawTemp>>8),
		byte(rawHum), byte(rawHum>>8),
		bat,
	)
	return data
}

// h5072Payload builds an H5072 manufacturer data blob: one leading vendor
// byte, the 24-bit big-endian packed integer, then the battery byte.
func h5072Payload(packet uint32, bat uint8) []byte {
	return []byte{0x00, byte(packet >> 16), byte(packet >> 8), byte(packet), bat}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// H5179 (two's-complement layout)
// =============================================================================

func TestDecodeH5179(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantTemp float64
		wantHum  float64
		wantBat  uint8
	}{
		{
			name:     "positive reading",
			data:     h5179Payload(nil, 2134, 4567, 88),
			wantTemp: 21.34,
			wantHum:  45.67,
			wantBat:  88,
		},
		{
			name: "negative temperature via two's-complement",
			// 0x8064 as int16 = 0x8064 - 0x10000 = -32668
			data:     h5179Payload(nil, 0x8064, 4567, 88),
			wantTemp: float64(0x8064-0x10000) / 100,
			wantHum:  45.67,
			wantBat:  88,
		},
		{
			name:     "reading taken from trailing bytes only",
			data:     h5179Payload([]byte{0x01, 0x02, 0x03}, 2500, 5000, 100),
			wantTemp: 25.00,
			wantHum:  50.00,
			wantBat:  100,
		},
		{
			name:     "zero reading",
			data:     h5179Payload(nil, 0, 0, 0),
			wantTemp: 0,
			wantHum:  0,
			wantBat:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(ModelH5179, CompanyIDH5179, tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}
			if !almostEqual(got.TemperatureCelsius, tt.wantTemp) {
				t.Errorf("TemperatureCelsius = %v, want %v", got.TemperatureCelsius, tt.wantTemp)
			}
			if !almostEqual(got.RelativeHumidityPercent, tt.wantHum) {
				t.Errorf("RelativeHumidityPercent = %v, want %v", got.RelativeHumidityPercent, tt.wantHum)
			}
			if got.BatteryPercent != tt.wantBat {
				t.Errorf("BatteryPercent = %v, want %v", got.BatteryPercent, tt.wantBat)
			}
			if !got.ObservedAt.IsZero() {
				t.Errorf("ObservedAt = %v, want zero (stamped by caller)", got.ObservedAt)
			}
		})
	}
}

func TestDecodeH5179Rejects(t *testing.T) {
	tests := []struct {
		name      string
		companyID uint16
		data      []byte
		wantErr   error
	}{
		{"wrong company id", CompanyIDH5072, h5179Payload(nil, 2134, 4567, 88), ErrCompanyIDMismatch},
		{"zero company id", 0, h5179Payload(nil, 2134, 4567, 88), ErrCompanyIDMismatch},
		{"payload too short", CompanyIDH5179, []byte{0x01, 0x02, 0x03, 0x04}, ErrPayloadTooShort},
		{"empty payload", CompanyIDH5179, nil, ErrPayloadTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(ModelH5179, tt.companyID, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// =============================================================================
// H5072 (sign-flag layout)
// =============================================================================

func TestDecodeH5072(t *testing.T) {
	tests := []struct {
		name     string
		packet   uint32
		bat      uint8
		wantTemp float64
		wantHum  float64
	}{
		{
			name:     "positive reading",
			packet:   0x053D10, // 343312
			bat:      91,
			wantTemp: float64(0x053D10) / 10000,
			wantHum:  float64(0x053D10%1000) / 10,
		},
		{
			name:   "negative temperature via sign flag",
			packet: 0x800000 | 0x00D431, // magnitude 54321
			bat:    47,
			// NOT two's-complement: clear the flag, negate the magnitude.
			wantTemp: float64(0x00D431) / -10000,
			wantHum:  float64((0x800000|0x00D431)%1000) / 10,
		},
		{
			name:     "zero packet",
			packet:   0,
			bat:      0,
			wantTemp: 0,
			wantHum:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(ModelH5072, CompanyIDH5072, h5072Payload(tt.packet, tt.bat))
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}
			if !almostEqual(got.TemperatureCelsius, tt.wantTemp) {
				t.Errorf("TemperatureCelsius = %v, want %v", got.TemperatureCelsius, tt.wantTemp)
			}
			if !almostEqual(got.RelativeHumidityPercent, tt.wantHum) {
				t.Errorf("RelativeHumidityPercent = %v, want %v", got.RelativeHumidityPercent, tt.wantHum)
			}
			if got.BatteryPercent != tt.bat {
				t.Errorf("BatteryPercent = %v, want %v", got.BatteryPercent, tt.bat)
			}
		})
	}
}

func TestDecodeH5072Rejects(t *testing.T) {
	tests := []struct {
		name      string
		companyID uint16
		data      []byte
		wantErr   error
	}{
		{"wrong company id", CompanyIDH5179, h5072Payload(0x053D10, 91), ErrCompanyIDMismatch},
		{"payload too short", CompanyIDH5072, []byte{0x00, 0x05, 0x3D}, ErrPayloadTooShort},
		{"empty payload", CompanyIDH5072, nil, ErrPayloadTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(ModelH5072, tt.companyID, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeUnknownModel(t *testing.T) {
	_, err := Decode(Model("H9999"), CompanyIDH5179, h5179Payload(nil, 1, 1, 1))
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Decode() error = %v, want %v", err, ErrUnknownModel)
	}
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Model
		wantErr bool
	}{
		{"H5179", "H5179", ModelH5179, false},
		{"H5072", "H5072", ModelH5072, false},
		{"lowercase rejected", "h5179", "", true},
		{"unknown", "H5075", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseModel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestModelCompanyID(t *testing.T) {
	if id, err := ModelH5179.CompanyID(); err != nil || id != 34817 {
		t.Errorf("ModelH5179.CompanyID() = %d, %v, want 34817, nil", id, err)
	}
	if id, err := ModelH5072.CompanyID(); err != nil || id != 60552 {
		t.Errorf("ModelH5072.CompanyID() = %d, %v, want 60552, nil", id, err)
	}
	if _, err := Model("nope").CompanyID(); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("CompanyID() error = %v, want %v", err, ErrUnknownModel)
	}
}
