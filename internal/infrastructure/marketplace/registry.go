package marketplace

import (
	"fmt"
	"sync"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// Registry implements PublisherRegistry over a fixed adapter set. Adapters
// are registered at startup; lookups are read-only after that.
type Registry struct {
	mu         sync.RWMutex
	publishers map[crosspost.PlatformName]crosspost.MarketplacePublisher
}

// NewRegistry creates a registry with the given publishers
func NewRegistry(publishers ...crosspost.MarketplacePublisher) *Registry {
	r := &Registry{
		publishers: make(map[crosspost.PlatformName]crosspost.MarketplacePublisher, len(publishers)),
	}
	for _, pub := range publishers {
		r.publishers[pub.Platform()] = pub
	}
	return r
}

// Register adds or replaces the publisher for its platform
func (r *Registry) Register(pub crosspost.MarketplacePublisher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishers[pub.Platform()] = pub
}

// Get returns the publisher for the platform, or ErrPublisherNotRegistered
func (r *Registry) Get(platform crosspost.PlatformName) (crosspost.MarketplacePublisher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pub, ok := r.publishers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", crosspost.ErrPublisherNotRegistered, platform)
	}
	return pub, nil
}

// List returns all registered publishers in stable platform order
func (r *Registry) List() []crosspost.MarketplacePublisher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]crosspost.MarketplacePublisher, 0, len(r.publishers))
	for _, platform := range crosspost.AllPlatforms() {
		if pub, ok := r.publishers[platform]; ok {
			out = append(out, pub)
		}
	}
	return out
}

// Ensure Registry implements PublisherRegistry interface
var _ crosspost.PublisherRegistry = (*Registry)(nil)
