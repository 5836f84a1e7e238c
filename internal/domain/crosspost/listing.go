package crosspost

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// ItemDetails is the platform-neutral snapshot of an item that the
// formatters work from. The application layer maps the catalog aggregate
// into this shape so the formatting rules stay free of persistence concerns.
type ItemDetails struct {
	// ItemID is our internal item ID
	ItemID uuid.UUID
	// SellerID is the owning seller
	SellerID uuid.UUID
	// Title is the seller-written item title
	Title string
	// Description is the seller-written item description
	Description string
	// Price is the asking price
	Price decimal.Decimal
	// Brand is the item brand (may be empty)
	Brand string
	// Size is the garment size label (may be empty)
	Size string
	// Condition is our internal condition vocabulary value
	Condition string
	// Category is our internal category vocabulary value
	Category string
	// ImageURLs contains the item image URLs
	ImageURLs []string
}

// ListingPayload is the platform-specific rendering of an item, ready to be
// sent to an API or packaged for manual posting.
type ListingPayload struct {
	// ItemID is our internal item ID, carried through for adapters that
	// need a stable SKU
	ItemID uuid.UUID
	// Platform identifies which platform this payload was formatted for
	Platform PlatformName
	// Title is the platform title, already capped to the platform's limit
	Title string
	// Description is the platform description body. It always embeds the
	// item's original title, description and price verbatim.
	Description string
	// Price is the asking price
	Price decimal.Decimal
	// Category is the platform's category vocabulary value
	Category string
	// Condition is the platform's condition vocabulary value
	Condition string
	// Tags contains platform tags/hashtags (Depop), capped per platform
	Tags []string
	// ImageURLs contains the item image URLs
	ImageURLs []string
}

// ManualPostPackage is the copy-paste hand-off produced for platforms
// without an API integration.
type ManualPostPackage struct {
	// Platform identifies the target platform
	Platform PlatformName `json:"platform"`
	// ListingURL is the platform's listing-creation page
	ListingURL string `json:"listing_url"`
	// FormattedText is the ready-to-paste listing body
	FormattedText string `json:"formatted_text"`
	// Instructions is the ordered list of steps for the seller
	Instructions []string `json:"instructions"`
}

// ---------------------------------------------------------------------------
// PublishResult
// ---------------------------------------------------------------------------

// PublishResult is the immutable outcome of one publish attempt against one
// platform. A manual-prepared result is a success in the sense of "package
// ready to copy", never "listing live". IsLive is the only way to read
// network certainty out of a result.
type PublishResult struct {
	// Platform identifies the platform attempted
	Platform PlatformName
	// Success is true when the attempt ran to its mode's definition of done
	Success bool
	// Mode records how the platform was driven
	Mode PublishMode
	// ExternalID is the listing ID on the platform (automated success only)
	ExternalID string
	// ExternalURL is the live listing URL (automated success only)
	ExternalURL string
	// Fees is the platform fee quoted for the listing (automated success only)
	Fees decimal.Decimal
	// Manual is the copy-paste package (manual-prepared success only)
	Manual *ManualPostPackage
	// ErrorMessage carries the upstream failure text (failed attempts only)
	ErrorMessage string
	// Timestamp is when the attempt completed
	Timestamp time.Time
}

// NewAutomatedResult creates a successful automated publish result
func NewAutomatedResult(platform PlatformName, externalID, externalURL string, fees decimal.Decimal) PublishResult {
	return PublishResult{
		Platform:    platform,
		Success:     true,
		Mode:        ModeAutomated,
		ExternalID:  externalID,
		ExternalURL: externalURL,
		Fees:        fees,
		Timestamp:   time.Now(),
	}
}

// NewManualPreparedResult creates a successful manual-prepared result
func NewManualPreparedResult(platform PlatformName, pkg *ManualPostPackage) PublishResult {
	return PublishResult{
		Platform:  platform,
		Success:   true,
		Mode:      ModeManualPrepared,
		Manual:    pkg,
		Timestamp: time.Now(),
	}
}

// NewFailedResult creates a failed publish result carrying the upstream error
func NewFailedResult(platform PlatformName, mode PublishMode, err error) PublishResult {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return PublishResult{
		Platform:     platform,
		Success:      false,
		Mode:         mode,
		ErrorMessage: message,
		Timestamp:    time.Now(),
	}
}

// IsLive returns true only when the listing is confirmed live on the
// platform. Manual-prepared successes never report live.
func (r PublishResult) IsLive() bool {
	return r.Success && r.Mode == ModeAutomated
}
