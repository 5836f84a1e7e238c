// Package subscription contains the seller subscription model: the tier
// vocabulary, the per-tier entitlement table, and the subscription entity
// with lazy expiry.
package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrSellerNotFound       = errors.New("subscription: seller not found")
	ErrSubscriptionNotFound = errors.New("subscription: subscription not found")
	ErrInvalidTier          = errors.New("subscription: invalid tier")
)

// ---------------------------------------------------------------------------
// Tier
// ---------------------------------------------------------------------------

// Tier is a subscription plan level
type Tier string

const (
	// TierFree is the default plan every seller has at minimum
	TierFree Tier = "free"
	// TierStarter is the entry paid plan
	TierStarter Tier = "starter"
	// TierPro is the mid paid plan
	TierPro Tier = "pro"
	// TierPremium is the top paid plan
	TierPremium Tier = "premium"
)

// IsValid returns true if the tier is valid
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierStarter, TierPro, TierPremium:
		return true
	default:
		return false
	}
}

// String returns the string representation of Tier
func (t Tier) String() string {
	return string(t)
}

// IsPaid returns true for tiers that can expire
func (t Tier) IsPaid() bool {
	return t == TierStarter || t == TierPro || t == TierPremium
}

// ---------------------------------------------------------------------------
// Entitlements
// ---------------------------------------------------------------------------

// UnlimitedItems is the MaxItems sentinel for tiers without an item cap
const UnlimitedItems int64 = -1

// Entitlement is what a tier permits
type Entitlement struct {
	// MaxItems is the item cap, UnlimitedItems for none
	MaxItems int64
	// AllowedPlatforms is the set of platforms the tier may publish to.
	// The home platform is always allowed regardless of this set.
	AllowedPlatforms []crosspost.PlatformName
}

// Allows reports whether the entitlement permits the platform. The home
// platform is allowed on every tier.
func (e Entitlement) Allows(platform crosspost.PlatformName) bool {
	if platform.IsHome() {
		return true
	}
	for _, p := range e.AllowedPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

// Entitlements is the immutable tier → entitlement table, built once at
// startup and injected wherever tier policy is evaluated.
type Entitlements struct {
	byTier map[Tier]Entitlement
}

// NewEntitlements builds an entitlement table from a tier map. Unknown
// lookups resolve to the free tier's entitlement.
func NewEntitlements(table map[Tier]Entitlement) *Entitlements {
	byTier := make(map[Tier]Entitlement, len(table))
	for tier, ent := range table {
		platforms := make([]crosspost.PlatformName, len(ent.AllowedPlatforms))
		copy(platforms, ent.AllowedPlatforms)
		byTier[tier] = Entitlement{MaxItems: ent.MaxItems, AllowedPlatforms: platforms}
	}
	return &Entitlements{byTier: byTier}
}

// DefaultEntitlements returns the production tier table
func DefaultEntitlements() *Entitlements {
	return NewEntitlements(map[Tier]Entitlement{
		TierFree: {
			MaxItems:         5,
			AllowedPlatforms: []crosspost.PlatformName{crosspost.PlatformVintageCrib},
		},
		TierStarter: {
			MaxItems: 50,
			AllowedPlatforms: []crosspost.PlatformName{
				crosspost.PlatformVintageCrib, crosspost.PlatformMercari, crosspost.PlatformDepop,
			},
		},
		TierPro: {
			MaxItems: 250,
			AllowedPlatforms: []crosspost.PlatformName{
				crosspost.PlatformVintageCrib, crosspost.PlatformMercari,
				crosspost.PlatformDepop, crosspost.PlatformPoshmark,
			},
		},
		TierPremium: {
			MaxItems:         UnlimitedItems,
			AllowedPlatforms: crosspost.AllPlatforms(),
		},
	})
}

// ForTier returns the entitlement for a tier, falling back to the free
// tier's entitlement for unknown input
func (e *Entitlements) ForTier(tier Tier) Entitlement {
	if ent, ok := e.byTier[tier]; ok {
		return ent
	}
	return e.byTier[TierFree]
}

// ---------------------------------------------------------------------------
// Seller / Subscription Entities
// ---------------------------------------------------------------------------

// Seller is the account that owns items and a subscription
type Seller struct {
	// ID is the unique identifier of the seller
	ID uuid.UUID
	// Email is the seller's login email
	Email string
	// DisplayName is the storefront name
	DisplayName string
	// CreatedAt is when the account was created
	CreatedAt time.Time
}

// Subscription is a seller's current plan. Expired paid plans degrade to
// free lazily on the next read, not via a background job.
type Subscription struct {
	// SellerID identifies the subscribed seller
	SellerID uuid.UUID
	// Tier is the current plan level
	Tier Tier
	// ExpiresAt is when a paid plan lapses (nil = does not lapse)
	ExpiresAt *time.Time
	// CreatedAt is when the subscription was created
	CreatedAt time.Time
	// UpdatedAt is when the subscription was last written
	UpdatedAt time.Time
}

// IsExpired reports whether a paid plan has lapsed as of now
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.Tier.IsPaid() && s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// Downgrade drops the subscription to the free tier
func (s *Subscription) Downgrade() {
	s.Tier = TierFree
	s.ExpiresAt = nil
	s.UpdatedAt = time.Now()
}

// ---------------------------------------------------------------------------
// Repository Ports
// ---------------------------------------------------------------------------

// SellerRepository resolves seller accounts
type SellerRepository interface {
	// FindByID returns a seller, or ErrSellerNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)
}

// SubscriptionRepository persists subscriptions
type SubscriptionRepository interface {
	// FindBySeller returns the seller's subscription, or
	// ErrSubscriptionNotFound
	FindBySeller(ctx context.Context, sellerID uuid.UUID) (*Subscription, error)

	// Save persists the subscription state
	Save(ctx context.Context, sub *Subscription) error
}
