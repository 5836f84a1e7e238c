package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence/models"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create stores a new item
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	var model models.ItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the full item state
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	var model models.ItemModel
	model.FromDomain(item)
	return r.db.WithContext(ctx).Save(&model).Error
}

// CountBySeller returns how many non-archived items the seller owns
func (r *GormItemRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("seller_id = ? AND status <> ?", sellerID, string(catalog.ItemStatusArchived)).
		Count(&count).Error
	return count, err
}

// Ensure GormItemRepository implements ItemRepository interface
var _ catalog.ItemRepository = (*GormItemRepository)(nil)
