package handler

import (
	"github.com/gin-gonic/gin"

	appcrosspost "github.com/vintagecrib/backend/internal/application/crosspost"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
	"github.com/vintagecrib/backend/internal/interfaces/http/middleware"
)

// CrossPostHandler handles cross-posting endpoints
type CrossPostHandler struct {
	BaseHandler
	engine *appcrosspost.Engine
}

// NewCrossPostHandler creates a new CrossPostHandler
func NewCrossPostHandler(engine *appcrosspost.Engine) *CrossPostHandler {
	return &CrossPostHandler{engine: engine}
}

// RegisterRoutes registers cross-posting routes
func (h *CrossPostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/items")
	{
		items.POST("/:id/publish", h.Publish)
		items.GET("/:id/crosspost", h.Ledger)
		items.POST("/retry-failed", h.RetryFailed)
	}
}

// Publish handles POST /items/:id/publish. The call returns 200 with
// per-platform results as long as at least one requested platform was
// attempted; 403 only when the seller's tier denies every requested
// platform.
func (h *CrossPostHandler) Publish(c *gin.Context) {
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

	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+middleware.FormatValidationError(err))
		return
	}

	agg, err := h.engine.PublishToAll(c.Request.Context(), itemID, sellerID, req.Platforms)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if len(agg.Results) == 0 && len(agg.DeniedPlatforms) > 0 {
		h.Forbidden(c, dto.ErrCodeEntitlementDenied,
			"Subscription tier does not permit any of the requested platforms")
		return
	}

	h.Success(c, dto.FromAggregateResult(agg))
}

// RetryFailed handles POST /items/retry-failed
func (h *CrossPostHandler) RetryFailed(c *gin.Context) {
	sellerID, err := getSellerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.RetryFailedRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BadRequest(c, "Invalid request body: "+middleware.FormatValidationError(err))
		return
	}

	var platformFilter *crosspost.PlatformName
	if req.Platform != nil && *req.Platform != "" {
		platform := crosspost.PlatformName(*req.Platform)
		platformFilter = &platform
	}

	outcomes, err := h.engine.RetryFailed(c.Request.Context(), sellerID, platformFilter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.FromRetryOutcomes(outcomes))
}

// Ledger handles GET /items/:id/crosspost
func (h *CrossPostHandler) Ledger(c *gin.Context) {
	if _, err := getSellerID(c); err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	status, err := h.engine.Ledger(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.FromLedgerStatus(status))
}
