package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vintagecrib/backend/internal/domain/catalog"
)

// CreateItemRequest is the body of POST /items
type CreateItemRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"max=10000"`
	Price       string   `json:"price" binding:"required"`
	Brand       string   `json:"brand" binding:"max=100"`
	Size        string   `json:"size" binding:"max=50"`
	Condition   string   `json:"condition" binding:"max=50"`
	Category    string   `json:"category" binding:"max=50"`
	ImageURLs   []string `json:"image_urls" binding:"omitempty,dive,url"`
}

// ItemResponse is the API shape of a catalog item
type ItemResponse struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"seller_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Brand       string          `json:"brand,omitempty"`
	Size        string          `json:"size,omitempty"`
	Condition   string          `json:"condition,omitempty"`
	Category    string          `json:"category,omitempty"`
	ImageURLs   []string        `json:"image_urls"`
	Status      string          `json:"status"`
	PublishedTo []string        `json:"published_to"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromItem maps a domain item into the response shape
func FromItem(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		SellerID:    item.SellerID.String(),
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		Brand:       item.Brand,
		Size:        item.Size,
		Condition:   item.Condition,
		Category:    item.Category,
		ImageURLs:   item.ImageURLs,
		Status:      item.Status.String(),
		PublishedTo: platformNames(item.PublishedTo),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
