package intake

import (
	"context"
	"testing"
	"time"

	"github.com/nerrad567/govee-watcher/internal/device"
	"github.com/nerrad567/govee-watcher/internal/govee"
)

const (
	h5179Addr = "E0:13:D5:71:D0:66"
	h5072Addr = "A4:C1:38:82:A2:88"
)

func testSetup(t *testing.T) (*Intake, *device.Store) {
	t.Helper()
	registry, err := device.NewRegistry(map[string]string{
		h5179Addr: "H5179",
		h5072Addr: "H5072",
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	store := device.NewStore()
	return New(registry, store), store
}

// runEvents feeds frames through a running intake and waits for completion.
func runEvents(t *testing.T, in *Intake, advs ...Advertisement) {
	t.Helper()

	events := make(chan Advertisement, len(advs))
	for _, adv := range advs {
		events <- adv
	}
	close(events)

	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(context.Background(), events)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("intake did not drain events")
	}
}

// h5179Frame encodes a valid H5179 manufacturer data blob.
func h5179Frame(rawTemp, rawHum uint16, bat uint8) []byte {
	return []byte{
		byte(rawTemp), byte(rawTemp >> 8),
		byte(rawHum), byte(rawHum >> 8),
		bat,
	}
}

func TestIntakeStoresDecodedReading(t *testing.T) {
	in, store := testSetup(t)

	stamp := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	in.now = func() time.Time { return stamp }

	runEvents(t, in, Advertisement{
		Address:   "e0:13:d5:71:d0:66", // gateway spelling differs from registry
		CompanyID: govee.CompanyIDH5179,
		Data:      h5179Frame(2134, 4567, 88),
	})

	reading, ok := store.Get(h5179Addr)
	if !ok {
		t.Fatal("reading not stored under canonical address")
	}
	if reading.TemperatureCelsius != 21.34 {
		t.Errorf("TemperatureCelsius = %v, want 21.34", reading.TemperatureCelsius)
	}
	if reading.RelativeHumidityPercent != 45.67 {
		t.Errorf("RelativeHumidityPercent = %v, want 45.67", reading.RelativeHumidityPercent)
	}
	if reading.BatteryPercent != 88 {
		t.Errorf("BatteryPercent = %v, want 88", reading.BatteryPercent)
	}
	if !reading.ObservedAt.Equal(stamp) {
		t.Errorf("ObservedAt = %v, want %v (stamped at ingest)", reading.ObservedAt, stamp)
	}
}

func TestIntakeDropsSilently(t *testing.T) {
	tests := []struct {
		name string
		adv  Advertisement
	}{
		{
			"unregistered address",
			Advertisement{Address: "00:11:22:33:44:55", CompanyID: govee.CompanyIDH5179, Data: h5179Frame(1, 1, 1)},
		},
		{
			"unparseable address",
			Advertisement{Address: "not-a-mac", CompanyID: govee.CompanyIDH5179, Data: h5179Frame(1, 1, 1)},
		},
		{
			"company id mismatch",
			Advertisement{Address: h5179Addr, CompanyID: govee.CompanyIDH5072, Data: h5179Frame(1, 1, 1)},
		},
		{
			"short payload",
			Advertisement{Address: h5179Addr, CompanyID: govee.CompanyIDH5179, Data: []byte{0x01}},
		},
		{
			"empty payload",
			Advertisement{Address: h5072Addr, CompanyID: govee.CompanyIDH5072, Data: nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, store := testSetup(t)
			runEvents(t, in, tt.adv)
			if store.Len() != 0 {
				t.Errorf("store has %d entries after dropped frame, want 0", store.Len())
			}
		})
	}
}

func TestIntakeLastWriteWins(t *testing.T) {
	in, store := testSetup(t)

	runEvents(t, in,
		Advertisement{Address: h5179Addr, CompanyID: govee.CompanyIDH5179, Data: h5179Frame(2000, 4000, 80)},
		Advertisement{Address: h5179Addr, CompanyID: govee.CompanyIDH5179, Data: h5179Frame(2100, 4100, 79)},
	)

	reading, ok := store.Get(h5179Addr)
	if !ok {
		t.Fatal("no reading stored")
	}
	if reading.TemperatureCelsius != 21.00 || reading.BatteryPercent != 79 {
		t.Errorf("stored reading = %+v, want the second frame's values", reading)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d entries, want 1", store.Len())
	}
}

func TestIntakeStopsOnContextCancel(t *testing.T) {
	in, _ := testSetup(t)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Advertisement)

	done := make(chan struct{})
	go func() {
		defer close(done)
		in.Run(ctx, events)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("intake did not stop on context cancellation")
	}
}

func TestIntakeMixedModels(t *testing.T) {
	in, store := testSetup(t)

	// H5072 frame: leading vendor byte, 24-bit packet 0x053D10, battery 91.
	h5072Data := []byte{0x00, 0x05, 0x3D, 0x10, 91}

	runEvents(t, in,
		Advertisement{Address: h5179Addr, CompanyID: govee.CompanyIDH5179, Data: h5179Frame(2134, 4567, 88)},
		Advertisement{Address: h5072Addr, CompanyID: govee.CompanyIDH5072, Data: h5072Data},
	)

	if store.Len() != 2 {
		t.Fatalf("store has %d entries, want 2", store.Len())
	}

	r72, _ := store.Get(h5072Addr)
	wantTemp := float64(0x053D10) / 10000
	if r72.TemperatureCelsius != wantTemp {
		t.Errorf("H5072 temperature = %v, want %v", r72.TemperatureCelsius, wantTemp)
	}
	if r72.BatteryPercent != 91 {
		t.Errorf("H5072 battery = %v, want 91", r72.BatteryPercent)
	}
}
