package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/infrastructure/persistence/models"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindBySeller finds the seller's subscription
func (r *GormSubscriptionRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "seller_id = ?", sellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the subscription state
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	var model models.SubscriptionModel
	model.FromDomain(sub)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository interface
var _ subscription.SubscriptionRepository = (*GormSubscriptionRepository)(nil)
