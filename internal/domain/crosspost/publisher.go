package crosspost

import (
	"context"
)

// MarketplacePublisher is the port implemented for every external platform.
// Implementations live in the infrastructure layer: the eBay adapter drives
// the platform API, the manual adapters produce copy-paste packages without
// touching the network. The home platform never goes through this port.
//
// Publish must honor ctx cancellation and must not retry internally; retry
// is an explicit engine operation driven by the ledger.
type MarketplacePublisher interface {
	// Platform returns the platform this publisher handles
	Platform() PlatformName

	// Mode returns the publish mode this publisher operates in
	Mode() PublishMode

	// Publish performs one attempt. A returned error is always also folded
	// into a failed PublishResult so callers can treat the result as the
	// single source of truth.
	Publish(ctx context.Context, payload *ListingPayload) (PublishResult, error)
}

// PublisherRegistry resolves publishers by platform code
type PublisherRegistry interface {
	// Get returns the publisher for the platform, or
	// ErrPublisherNotRegistered
	Get(platform PlatformName) (MarketplacePublisher, error)

	// List returns all registered publishers
	List() []MarketplacePublisher
}
