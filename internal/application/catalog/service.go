// Package catalog contains the item catalog application service: item
// creation behind the subscription quota, and item reads for the API
// surface.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appsub "github.com/vintagecrib/backend/internal/application/subscription"
	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/shared"
)

// CreateItemInput carries the seller-provided fields for a new item
type CreateItemInput struct {
	// Title is the listing title (required)
	Title string
	// Description is the seller-written description
	Description string
	// Price is the asking price in USD
	Price decimal.Decimal
	// Brand is the item brand (optional)
	Brand string
	// Size is the garment size label (optional)
	Size string
	// Condition is the internal condition vocabulary value (optional)
	Condition string
	// Category is the internal category vocabulary value (optional)
	Category string
	// ImageURLs are the item photo URLs
	ImageURLs []string
}

// Service implements catalog use cases
type Service struct {
	items  catalog.ItemRepository
	gate   *appsub.Gate
	logger *zap.Logger
}

// NewService creates a new catalog Service
func NewService(items catalog.ItemRepository, gate *appsub.Gate, logger *zap.Logger) *Service {
	return &Service{
		items:  items,
		gate:   gate,
		logger: logger,
	}
}

// CreateItem creates a draft item for the seller after checking the tier's
// item quota against the seller's current item count
func (s *Service) CreateItem(ctx context.Context, sellerID uuid.UUID, input CreateItemInput) (*catalog.Item, error) {
	count, err := s.items.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count seller items: %w", err)
	}

	check, err := s.gate.CheckItemCreation(ctx, sellerID, count)
	if err != nil {
		return nil, err
	}
	if !check.Allowed {
		return nil, fmt.Errorf("%w: tier %s allows %d items, seller has %d",
			shared.ErrQuotaExceeded, check.Tier, check.Limit, check.Current)
	}

	item, err := catalog.NewItem(sellerID, input.Title, input.Description, input.Price)
	if err != nil {
		return nil, err
	}
	item.Brand = input.Brand
	item.Size = input.Size
	item.Condition = input.Condition
	item.Category = input.Category
	if len(input.ImageURLs) > 0 {
		item.ImageURLs = input.ImageURLs
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("seller_id", sellerID.String()),
		zap.String("tier", check.Tier.String()),
	)
	return item, nil
}

// GetItem returns the item, or catalog.ErrItemNotFound
func (s *Service) GetItem(ctx context.Context, itemID uuid.UUID) (*catalog.Item, error) {
	return s.items.FindByID(ctx, itemID)
}
