package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/domain/subscription"
)

// SellerModel is the persistence model for seller accounts
type SellerModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Email       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(100)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SellerModel) TableName() string {
	return "sellers"
}

// ToDomain converts the persistence model to a domain Seller
func (m *SellerModel) ToDomain() *subscription.Seller {
	return &subscription.Seller{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Seller
func (m *SellerModel) FromDomain(seller *subscription.Seller) {
	m.ID = seller.ID
	m.Email = seller.Email
	m.DisplayName = seller.DisplayName
	m.CreatedAt = seller.CreatedAt
}

// SubscriptionModel is the persistence model for subscriptions. One row per
// seller.
type SubscriptionModel struct {
	SellerID  uuid.UUID `gorm:"type:uuid;primary_key"`
	Tier      string    `gorm:"type:varchar(20);not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToDomain converts the persistence model to a domain Subscription
func (m *SubscriptionModel) ToDomain() *subscription.Subscription {
	return &subscription.Subscription{
		SellerID:  m.SellerID,
		Tier:      subscription.Tier(m.Tier),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Subscription
func (m *SubscriptionModel) FromDomain(sub *subscription.Subscription) {
	m.SellerID = sub.SellerID
	m.Tier = sub.Tier.String()
	m.ExpiresAt = sub.ExpiresAt
	m.CreatedAt = sub.CreatedAt
	m.UpdatedAt = sub.UpdatedAt
}
