package device

import (
	"sync"

	"github.com/nerrad567/govee-watcher/internal/govee"
)

// Entry pairs a device address with its latest reading, as returned by
// Store.Snapshot.
type Entry struct {
	Address string
	Reading govee.Reading
}

// Store keeps the most recent reading per device address.
//
// A single RWMutex over the map is sufficient here: writes are small and
// infrequent (one per advertisement, every few seconds per device) and
// reads are small snapshots. Readers never observe a partially written
// Reading because the value is replaced wholesale under the lock.
type Store struct {
	mu sync.RWMutex
	// order preserves first-seen insertion order for stable snapshots.
	order    []string
	readings map[string]govee.Reading
}

// NewStore creates an empty state store.
func NewStore() *Store {
	return &Store{
		readings: make(map[string]govee.Reading),
	}
}

// Upsert replaces the entry for address with reading.
//
// This is the only mutator; it is called from the single intake path but is
// safe against any number of concurrent readers. Last write wins in arrival
// order regardless of Reading.ObservedAt.
func (s *Store) Upsert(address string, reading govee.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.readings[address]; !seen {
		s.order = append(s.order, address)
	}
	s.readings[address] = reading
}

// Get returns the latest reading for address, if one has been observed.
func (s *Store) Get(address string) (govee.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reading, ok := s.readings[address]
	return reading, ok
}

// Snapshot returns all entries consistent at the instant of the call, in
// first-seen order. The slice is owned by the caller.
func (s *Store) Snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, addr := range s.order {
		entries = append(entries, Entry{Address: addr, Reading: s.readings[addr]})
	}
	return entries
}

// Len returns the number of devices with at least one observed reading.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}
