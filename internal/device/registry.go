package device

import (
	"fmt"
	"sort"

	"github.com/nerrad567/govee-watcher/internal/govee"
)

// Registry maps canonical device addresses to their Govee model.
//
// The registry is built once at startup and never mutated afterwards, so
// lookups need no locking.
type Registry struct {
	models map[string]govee.Model
}

// NewRegistry builds a registry from address/model pairs.
//
// Addresses are normalized to canonical uppercase colon-hex form; both
// colon-hex and bare-hex input are accepted.
//
// Parameters:
//   - entries: Address → model pairs, typically straight from config
//
// Returns:
//   - *Registry: Immutable registry
//   - error: ErrEmptyRegistry, ErrDuplicateAddress, or an address/model
//     parse failure
func NewRegistry(entries map[string]string) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}

	models := make(map[string]govee.Model, len(entries))
	for addr, modelName := range entries {
		canonical, err := govee.NormalizeAddress(addr)
		if err != nil {
			return nil, fmt.Errorf("registry entry %q: %w", addr, err)
		}
		model, err := govee.ParseModel(modelName)
		if err != nil {
			return nil, fmt.Errorf("registry entry %q: %w", addr, err)
		}
		if _, exists := models[canonical]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAddress, canonical)
		}
		models[canonical] = model
	}

	return &Registry{models: models}, nil
}

// Lookup returns the model registered for a canonical address.
func (r *Registry) Lookup(address string) (govee.Model, bool) {
	model, ok := r.models[address]
	return model, ok
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.models)
}

// Addresses returns all registered addresses in sorted order.
func (r *Registry) Addresses() []string {
	addrs := make([]string, 0, len(r.models))
	for addr := range r.models {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
