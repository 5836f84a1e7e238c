package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// CrossPostRecordModel is the persistence model for the cross-post ledger.
// One row per (item, platform) pair, enforced by a unique index.
type CrossPostRecordModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ItemID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_crosspost_item_platform"`
	Platform string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_crosspost_item_platform"`
	SellerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Mode     string    `gorm:"type:varchar(20)"`
	// ExternalID is the platform-side listing ID (automated success only)
	ExternalID string `gorm:"type:varchar(255)"`
	// ExternalURL is the live listing URL (automated success only)
	ExternalURL  string     `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	ErrorMessage string     `gorm:"type:text"`
	AttemptCount int        `gorm:"not null;default:0"`
	NextRetryAt  *time.Time `gorm:"index"`
	PostedAt     time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CrossPostRecordModel) TableName() string {
	return "cross_post_records"
}

// ToDomain converts the persistence model to a domain CrossPostRecord
func (m *CrossPostRecordModel) ToDomain() *crosspost.CrossPostRecord {
	return &crosspost.CrossPostRecord{
		ID:           m.ID,
		ItemID:       m.ItemID,
		SellerID:     m.SellerID,
		Platform:     crosspost.PlatformName(m.Platform),
		Mode:         crosspost.PublishMode(m.Mode),
		ExternalID:   m.ExternalID,
		ExternalURL:  m.ExternalURL,
		Status:       crosspost.RecordStatus(m.Status),
		ErrorMessage: m.ErrorMessage,
		AttemptCount: m.AttemptCount,
		NextRetryAt:  m.NextRetryAt,
		PostedAt:     m.PostedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain CrossPostRecord
func (m *CrossPostRecordModel) FromDomain(record *crosspost.CrossPostRecord) {
	m.ID = record.ID
	m.ItemID = record.ItemID
	m.Platform = record.Platform.String()
	m.SellerID = record.SellerID
	m.Mode = string(record.Mode)
	m.ExternalID = record.ExternalID
	m.ExternalURL = record.ExternalURL
	m.Status = string(record.Status)
	m.ErrorMessage = record.ErrorMessage
	m.AttemptCount = record.AttemptCount
	m.NextRetryAt = record.NextRetryAt
	m.PostedAt = record.PostedAt
	m.UpdatedAt = record.UpdatedAt
}
