// Package device holds the registry of watched sensors and the latest-wins
// state store their readings land in.
//
// # Registry
//
// Registry is the immutable mapping from canonical device address to Govee
// model, built once from configuration at startup. Advertisements from
// addresses outside the registry are irrelevant broadcast traffic and are
// dropped by the intake path.
//
// # Store
//
// Store keeps the most recent reading per device address. It has exactly one
// logical writer (the advertisement intake) and arbitrarily many concurrent
// readers (status protocol connections). Every write replaces the entry
// wholesale; ordering authority is arrival order, not Reading.ObservedAt.
// Entries are never deleted: a device that stops transmitting keeps its last
// known reading, and staleness is inferable only from ObservedAt.
//
// # Thread Safety
//
// All exported types are safe for concurrent use from multiple goroutines.
package device
