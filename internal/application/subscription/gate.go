// Package subscription contains the entitlement gate the cross-posting
// engine consults before publishing.
package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
	"github.com/vintagecrib/backend/internal/domain/subscription"
)

// ItemCreationCheck is the result of a quota check for creating one more item
type ItemCreationCheck struct {
	// Allowed is true when the seller may create another item
	Allowed bool `json:"allowed"`
	// Limit is the tier's item cap (-1 for unlimited)
	Limit int64 `json:"limit"`
	// Current is the seller's current item count
	Current int64 `json:"current"`
	// Tier is the tier the check was evaluated against
	Tier subscription.Tier `json:"tier"`
}

// PlatformCheck partitions a requested platform set into what the seller's
// tier permits and what it denies
type PlatformCheck struct {
	// Tier is the tier the check was evaluated against
	Tier subscription.Tier `json:"tier"`
	// Allowed is the intersection of the request with the tier's platforms.
	// The home platform is always included when requested.
	Allowed []crosspost.PlatformName `json:"allowed"`
	// Denied is the remainder of the request
	Denied []crosspost.PlatformName `json:"denied"`
}

// GateConfig contains configuration for the Gate
type GateConfig struct {
	// FailOpen controls what happens when the subscription lookup fails:
	// true grants the free tier (the system's "always allow at minimum"
	// policy), false propagates the error. Default true.
	FailOpen bool
}

// DefaultGateConfig returns the default gate configuration
func DefaultGateConfig() GateConfig {
	return GateConfig{FailOpen: true}
}

// Gate evaluates what a seller's subscription tier permits. It is a pure
// read against the subscription store except for the lazy-expiry rewrite:
// a lapsed paid plan is downgraded to free and persisted on the read path.
type Gate struct {
	subs         subscription.SubscriptionRepository
	entitlements *subscription.Entitlements
	logger       *zap.Logger
	failOpen     bool
}

// NewGate creates a new Gate
func NewGate(
	subs subscription.SubscriptionRepository,
	entitlements *subscription.Entitlements,
	logger *zap.Logger,
	config GateConfig,
) *Gate {
	return &Gate{
		subs:         subs,
		entitlements: entitlements,
		logger:       logger,
		failOpen:     config.FailOpen,
	}
}

// CheckItemCreation reports whether the seller may create one more item
// given their current item count
func (g *Gate) CheckItemCreation(ctx context.Context, sellerID uuid.UUID, currentItemCount int64) (*ItemCreationCheck, error) {
	tier, err := g.resolveTier(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	ent := g.entitlements.ForTier(tier)
	allowed := ent.MaxItems == subscription.UnlimitedItems || currentItemCount < ent.MaxItems

	return &ItemCreationCheck{
		Allowed: allowed,
		Limit:   ent.MaxItems,
		Current: currentItemCount,
		Tier:    tier,
	}, nil
}

// CheckPlatforms partitions the requested platforms into allowed and denied
// per the seller's tier. The home platform is always allowed.
func (g *Gate) CheckPlatforms(ctx context.Context, sellerID uuid.UUID, requested []crosspost.PlatformName) (*PlatformCheck, error) {
	tier, err := g.resolveTier(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	ent := g.entitlements.ForTier(tier)
	check := &PlatformCheck{
		Tier:    tier,
		Allowed: make([]crosspost.PlatformName, 0, len(requested)),
		Denied:  make([]crosspost.PlatformName, 0),
	}
	for _, platform := range requested {
		if ent.Allows(platform) {
			check.Allowed = append(check.Allowed, platform)
		} else {
			check.Denied = append(check.Denied, platform)
		}
	}
	return check, nil
}

// resolveTier reads the seller's subscription, applying the lazy-expiry
// downgrade and the fail-open policy
func (g *Gate) resolveTier(ctx context.Context, sellerID uuid.UUID) (subscription.Tier, error) {
	sub, err := g.subs.FindBySeller(ctx, sellerID)
	if err != nil {
		if !g.failOpen {
			return "", err
		}
		g.logger.Warn("subscription lookup failed, granting free tier (fail-open)",
			zap.String("seller_id", sellerID.String()),
			zap.Error(err),
		)
		return subscription.TierFree, nil
	}

	if sub.IsExpired(time.Now()) {
		expiredTier := sub.Tier
		sub.Downgrade()
		if err := g.subs.Save(ctx, sub); err != nil {
			// The downgrade still applies for this call even if the
			// persist fails; the next read will retry the write.
			g.logger.Warn("failed to persist lazy downgrade",
				zap.String("seller_id", sellerID.String()),
				zap.Error(err),
			)
		}
		g.logger.Info("expired subscription downgraded to free",
			zap.String("seller_id", sellerID.String()),
			zap.String("expired_tier", expiredTier.String()),
		)
	}

	return sub.Tier, nil
}
