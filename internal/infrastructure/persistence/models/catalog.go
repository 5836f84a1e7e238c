// Package models contains the GORM persistence models and their mappings
// to and from the domain entities.
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// modelLogger is used for non-fatal mapping problems
var modelLogger = zap.L().Named("persistence.models")

// ItemModel is the persistence model for catalog items
type ItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SellerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Brand       string          `gorm:"type:varchar(100)"`
	Size        string          `gorm:"type:varchar(50)"`
	Condition   string          `gorm:"type:varchar(50)"`
	Category    string          `gorm:"type:varchar(50)"`
	// ImageURLsJSON stores the image URL list as a JSON array
	ImageURLsJSON string `gorm:"type:text;column:image_urls"`
	Status        string `gorm:"type:varchar(20);not null;index"`
	// PublishedToJSON stores the published platform set as a JSON array
	PublishedToJSON string    `gorm:"type:text;column:published_to"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Brand:       m.Brand,
		Size:        m.Size,
		Condition:   m.Condition,
		Category:    m.Category,
		ImageURLs:   make([]string, 0),
		Status:      catalog.ItemStatus(m.Status),
		PublishedTo: make([]crosspost.PlatformName, 0),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.ImageURLsJSON != "" && m.ImageURLsJSON != "[]" {
		var urls []string
		if err := json.Unmarshal([]byte(m.ImageURLsJSON), &urls); err != nil {
			modelLogger.Warn("failed to parse image_urls JSON",
				zap.String("item_id", m.ID.String()),
				zap.Error(err))
		} else {
			item.ImageURLs = urls
		}
	}

	if m.PublishedToJSON != "" && m.PublishedToJSON != "[]" {
		var platforms []crosspost.PlatformName
		if err := json.Unmarshal([]byte(m.PublishedToJSON), &platforms); err != nil {
			modelLogger.Warn("failed to parse published_to JSON",
				zap.String("item_id", m.ID.String()),
				zap.Error(err))
		} else {
			item.PublishedTo = platforms
		}
	}

	return item
}

// FromDomain populates the persistence model from a domain Item
func (m *ItemModel) FromDomain(item *catalog.Item) {
	m.ID = item.ID
	m.SellerID = item.SellerID
	m.Title = item.Title
	m.Description = item.Description
	m.Price = item.Price
	m.Brand = item.Brand
	m.Size = item.Size
	m.Condition = item.Condition
	m.Category = item.Category
	m.Status = string(item.Status)
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt

	if urls, err := json.Marshal(item.ImageURLs); err == nil {
		m.ImageURLsJSON = string(urls)
	}
	if platforms, err := json.Marshal(item.PublishedTo); err == nil {
		m.PublishedToJSON = string(platforms)
	}
}
