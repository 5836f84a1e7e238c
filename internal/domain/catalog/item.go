// Package catalog contains the Item aggregate: the seller-owned listing the
// cross-posting engine distributes to external marketplaces.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrItemNotFound      = errors.New("catalog: item not found")
	ErrInvalidItemData   = errors.New("catalog: invalid item data")
	ErrInvalidItemStatus = errors.New("catalog: invalid item status")
	ErrInvalidSellerID   = errors.New("catalog: invalid seller ID")
)

// ---------------------------------------------------------------------------
// ItemStatus
// ---------------------------------------------------------------------------

// ItemStatus is the lifecycle state of an item
type ItemStatus string

const (
	// ItemStatusDraft is the initial state after creation
	ItemStatusDraft ItemStatus = "draft"
	// ItemStatusPublished means the item is live on at least one platform.
	// An item never auto-reverts out of published.
	ItemStatusPublished ItemStatus = "published"
	// ItemStatusSold means the item has been sold
	ItemStatusSold ItemStatus = "sold"
	// ItemStatusArchived means the seller retired the item
	ItemStatusArchived ItemStatus = "archived"
)

// IsValid returns true if the status is valid
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusDraft, ItemStatusPublished, ItemStatusSold, ItemStatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Item Aggregate
// ---------------------------------------------------------------------------

// Item is a seller-owned catalog entry. PublishedTo is mutated only by the
// cross-posting engine after a publish attempt; it always mirrors the set of
// platforms whose current ledger record is a success.
type Item struct {
	// ID is the unique identifier of the item
	ID uuid.UUID
	// SellerID is the owning seller
	SellerID uuid.UUID
	// Title is the seller-written title
	Title string
	// Description is the seller-written description
	Description string
	// Price is the asking price
	Price decimal.Decimal
	// Brand is the item brand (optional)
	Brand string
	// Size is the garment size label (optional)
	Size string
	// Condition is the internal condition vocabulary value
	Condition string
	// Category is the internal category vocabulary value
	Category string
	// ImageURLs contains the item image URLs
	ImageURLs []string
	// Status is the lifecycle state
	Status ItemStatus
	// PublishedTo is the set of platforms the item is published to
	PublishedTo []crosspost.PlatformName
	// CreatedAt is when the item was created
	CreatedAt time.Time
	// UpdatedAt is when the item was last modified
	UpdatedAt time.Time
}

// NewItem creates a draft item owned by the seller
func NewItem(sellerID uuid.UUID, title, description string, price decimal.Decimal) (*Item, error) {
	if sellerID == uuid.Nil {
		return nil, ErrInvalidSellerID
	}
	if title == "" {
		return nil, ErrInvalidItemData
	}
	if price.IsNegative() {
		return nil, ErrInvalidItemData
	}
	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       price,
		ImageURLs:   make([]string, 0),
		Status:      ItemStatusDraft,
		PublishedTo: make([]crosspost.PlatformName, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetPublishState replaces the published-platform set and promotes a draft
// to published when the set is non-empty. The status never reverts: clearing
// the set later leaves a published item published.
func (i *Item) SetPublishState(publishedTo []crosspost.PlatformName) {
	i.PublishedTo = publishedTo
	if len(publishedTo) > 0 && i.Status == ItemStatusDraft {
		i.Status = ItemStatusPublished
	}
	i.UpdatedAt = time.Now()
}

// IsPublishedTo reports whether the item is currently published on the
// platform
func (i *Item) IsPublishedTo(platform crosspost.PlatformName) bool {
	for _, p := range i.PublishedTo {
		if p == platform {
			return true
		}
	}
	return false
}

// Details returns the platform-neutral snapshot the formatters work from
func (i *Item) Details() crosspost.ItemDetails {
	return crosspost.ItemDetails{
		ItemID:      i.ID,
		SellerID:    i.SellerID,
		Title:       i.Title,
		Description: i.Description,
		Price:       i.Price,
		Brand:       i.Brand,
		Size:        i.Size,
		Condition:   i.Condition,
		Category:    i.Category,
		ImageURLs:   i.ImageURLs,
	}
}

// ---------------------------------------------------------------------------
// Repository Port
// ---------------------------------------------------------------------------

// ItemRepository persists items
type ItemRepository interface {
	// Create stores a new item
	Create(ctx context.Context, item *Item) error

	// FindByID returns an item, or ErrItemNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// Save persists the full item state
	Save(ctx context.Context, item *Item) error

	// CountBySeller returns how many non-archived items the seller owns
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)
}
