package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence/models"
)

// GormSellerRepository implements SellerRepository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Seller, error) {
	var model models.SellerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSellerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormSellerRepository implements SellerRepository interface
var _ subscription.SellerRepository = (*GormSellerRepository)(nil)
