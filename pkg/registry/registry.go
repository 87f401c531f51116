package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// ErrScreenNotFound is returned when no factory is registered for a view controller identifier.
var ErrScreenNotFound = errors.New("screen factory not found")

// ScreenFactory builds the screen for an accepted proposal.
type ScreenFactory func(ctx context.Context, proposal domain.VisitProposal) (ports.Screen, error)

// Registry maps view controller identifiers to screen factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ScreenFactory
}

// NewRegistry creates a registry holding the default web screen factory.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]ScreenFactory),
	}
	r.Register(domain.DefaultViewController, NewWebScreen)
	return r
}

// Register adds a factory for id.
// If a factory with the same id exists, it is overwritten.
func (r *Registry) Register(id string, fn ScreenFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[id] = fn
}

// Identifiers lists the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build looks up the factory for the proposal's view controller and runs it.
func (r *Registry) Build(ctx context.Context, proposal domain.VisitProposal) (ports.Screen, error) {
	id := proposal.ViewController()

	r.mu.RLock()
	fn, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScreenNotFound, id)
	}

	screen, err := fn(ctx, proposal)
	if err != nil {
		return nil, fmt.Errorf("failed to build screen %s: %w", id, err)
	}
	return screen, nil
}
