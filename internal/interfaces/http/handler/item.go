package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/vintagecrib/backend/internal/application/catalog"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
)

// ItemHandler handles catalog item endpoints
type ItemHandler struct {
	BaseHandler
	service *appcatalog.Service
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(service *appcatalog.Service) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers item routes
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("/:id", h.Get)
	}
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		h.BadRequest(c, "Invalid price")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), sellerID, appcatalog.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Brand:       req.Brand,
		Size:        req.Size,
		Condition:   req.Condition,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.FromItem(item))
}

// Get handles GET /items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if item.SellerID != sellerID {
		h.NotFound(c, "Item not found")
		return
	}

	h.Success(c, dto.FromItem(item))
}
