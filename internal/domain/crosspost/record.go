package crosspost

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// RecordStatus
// ---------------------------------------------------------------------------

// RecordStatus is the state of the current cross-post record for an
// (item, platform) pair
type RecordStatus string

const (
	// RecordStatusPending indicates an attempt is in flight
	RecordStatusPending RecordStatus = "pending"
	// RecordStatusSuccess indicates the latest attempt succeeded
	RecordStatusSuccess RecordStatus = "success"
	// RecordStatusFailed indicates the latest attempt failed
	RecordStatusFailed RecordStatus = "failed"
)

// IsValid returns true if the status is valid
func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordStatusPending, RecordStatusSuccess, RecordStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of RecordStatus
func (s RecordStatus) String() string {
	return string(s)
}

// Retry backoff bounds. Attempts are not capped (see RetryEligible); the
// window between attempts doubles from retryBackoffBase up to retryBackoffMax.
const (
	retryBackoffBase = time.Minute
	retryBackoffMax  = time.Hour
)

// ---------------------------------------------------------------------------
// CrossPostRecord Entity
// ---------------------------------------------------------------------------

// CrossPostRecord is the ledger entry for one (item, platform) pair. There
// is exactly one logical current record per pair: retries overwrite its
// status rather than appending history.
type CrossPostRecord struct {
	// ID is the unique identifier of this record
	ID uuid.UUID
	// ItemID is the item this record tracks
	ItemID uuid.UUID
	// SellerID is the item's owner, denormalized for retry targeting
	SellerID uuid.UUID
	// Platform is the marketplace attempted
	Platform PlatformName
	// Mode records how the platform was driven on the latest attempt
	Mode PublishMode
	// ExternalID is the platform listing ID (set on automated success)
	ExternalID string
	// ExternalURL is the platform listing URL (set on automated success)
	ExternalURL string
	// Status is the state of the latest attempt
	Status RecordStatus
	// ErrorMessage carries the latest failure text
	ErrorMessage string
	// AttemptCount is the number of publish attempts made for this pair
	AttemptCount int
	// NextRetryAt is the earliest time a retry may run (exponential backoff)
	NextRetryAt *time.Time
	// PostedAt is when the first attempt for this pair was made
	PostedAt time.Time
	// UpdatedAt is when this record was last written
	UpdatedAt time.Time
}

// NewCrossPostRecord creates a pending ledger record for one pair
func NewCrossPostRecord(itemID, sellerID uuid.UUID, platform PlatformName) (*CrossPostRecord, error) {
	if itemID == uuid.Nil || sellerID == uuid.Nil {
		return nil, ErrRecordNotFound
	}
	if !platform.IsValid() {
		return nil, ErrInvalidPlatform
	}
	now := time.Now()
	return &CrossPostRecord{
		ID:        uuid.New(),
		ItemID:    itemID,
		SellerID:  sellerID,
		Platform:  platform,
		Mode:      platform.DefaultMode(),
		Status:    RecordStatusPending,
		PostedAt:  now,
		UpdatedAt: now,
	}, nil
}

// Apply folds one publish attempt outcome into the record
func (r *CrossPostRecord) Apply(result PublishResult) {
	r.AttemptCount++
	r.Mode = result.Mode
	r.UpdatedAt = time.Now()
	if result.Success {
		r.Status = RecordStatusSuccess
		r.ExternalID = result.ExternalID
		r.ExternalURL = result.ExternalURL
		r.ErrorMessage = ""
		r.NextRetryAt = nil
		return
	}
	r.Status = RecordStatusFailed
	r.ErrorMessage = result.ErrorMessage
	next := r.UpdatedAt.Add(r.backoff())
	r.NextRetryAt = &next
}

// backoff doubles per failed attempt, capped at retryBackoffMax
func (r *CrossPostRecord) backoff() time.Duration {
	d := retryBackoffBase
	for i := 1; i < r.AttemptCount && d < retryBackoffMax; i++ {
		d *= 2
	}
	if d > retryBackoffMax {
		d = retryBackoffMax
	}
	return d
}

// RetryEligible reports whether a retry may run now. Only failed records
// qualify, and only after their backoff window has elapsed. There is no
// attempt ceiling.
func (r *CrossPostRecord) RetryEligible(now time.Time) bool {
	if r.Status != RecordStatusFailed {
		return false
	}
	if r.NextRetryAt == nil {
		return true
	}
	return !now.Before(*r.NextRetryAt)
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// CrossPostRecordRepository persists the ledger. Upsert keys on
// (item_id, platform): writing a record for an existing pair overwrites the
// current record in place.
type CrossPostRecordRepository interface {
	// Upsert writes the current record for the record's (item, platform) pair
	Upsert(ctx context.Context, record *CrossPostRecord) error

	// FindByItem returns all current records for an item
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]CrossPostRecord, error)

	// FindByItemAndPlatform returns the current record for one pair
	FindByItemAndPlatform(ctx context.Context, itemID uuid.UUID, platform PlatformName) (*CrossPostRecord, error)

	// FindFailedBySeller returns all failed records across a seller's items,
	// optionally filtered to one platform
	FindFailedBySeller(ctx context.Context, sellerID uuid.UUID, platform *PlatformName) ([]CrossPostRecord, error)

	// CountByPlatform returns attempt counts per platform for an item
	CountByPlatform(ctx context.Context, itemID uuid.UUID) (map[PlatformName]int, error)
}
