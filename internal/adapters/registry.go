package adapters

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/prompt-forge-api/internal/prompt"
)

// Registry maps model identifiers to their adapters. Registration order is
// kept so listings and batch output are stable.
type Registry struct {
	adapters map[string]Adapter
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[string]Adapter),
	}
}

// Register adds an adapter under its capability's model type
func (r *Registry) Register(adapter Adapter) error {
	id := strings.ToLower(strings.TrimSpace(adapter.Capability().ModelType))
	if id == "" {
		return fmt.Errorf("adapter has no model_type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.adapters[id]; exists {
		return fmt.Errorf("model %q already registered", id)
	}
	r.adapters[id] = adapter
	r.order = append(r.order, id)
	return nil
}

// HasModel reports whether id is registered
func (r *Registry) HasModel(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.adapters[id]
	return exists
}

// IDs returns registered model identifiers in registration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Models returns a copy of every capability in registration order
func (r *Registry) Models() []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Capability, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.adapters[id].Capability().clone())
	}
	return out
}

// Capability looks up one model's capability
func (r *Registry) Capability(id string) (Capability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adapter, exists := r.adapters[id]
	if !exists {
		return Capability{}, fmt.Errorf("%w: %s", prompt.ErrUnknownModel, id)
	}
	return adapter.Capability().clone(), nil
}

// Render renders cp for the model id
func (r *Registry) Render(cp prompt.CanonicalPrompt, id string) (RenderedPrompt, error) {
	r.mu.RLock()
	adapter, exists := r.adapters[id]
	r.mu.RUnlock()

	if !exists {
		return RenderedPrompt{}, fmt.Errorf("%w: %s", prompt.ErrUnknownModel, id)
	}
	return adapter.Render(cp), nil
}
