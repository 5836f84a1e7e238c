package crosspost

import (
	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// AggregateResult is the outcome of one PublishToAll call. Success means at
// least one attempted platform succeeded; callers must inspect
// PublishedCount and the per-platform results to know the real outcome;
// the call itself completes even when every platform fails.
type AggregateResult struct {
	// Success is true when at least one attempted platform succeeded
	Success bool
	// Results holds the per-platform outcome for every attempted platform
	Results map[crosspost.PlatformName]crosspost.PublishResult
	// PublishedCount is the number of successful attempts in this call
	PublishedCount int
	// TotalRequested is the number of platforms the caller asked for,
	// including denied ones
	TotalRequested int
	// DeniedPlatforms lists requested platforms the seller's tier blocks;
	// they were never attempted
	DeniedPlatforms []crosspost.PlatformName
	// PublishedTo is the item's full published set after this call (union
	// across all ledger records, not just this call's)
	PublishedTo []crosspost.PlatformName
}

// RetryOutcome is one re-attempted (item, platform) pair from RetryFailed
type RetryOutcome struct {
	// ItemID is the item retried
	ItemID uuid.UUID
	// Result is the outcome of the retry attempt
	Result crosspost.PublishResult
}

// LedgerStatus is the per-item ledger readout used for stats
type LedgerStatus struct {
	// ItemID is the item
	ItemID uuid.UUID
	// Records are the current records for every attempted platform
	Records []crosspost.CrossPostRecord
	// AttemptsByPlatform is the total attempt count per platform
	AttemptsByPlatform map[crosspost.PlatformName]int
}
