// Package handler contains the gin HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcrosspost "github.com/vintagecrib/backend/internal/application/crosspost"
	"github.com/vintagecrib/backend/internal/domain/catalog"
	"github.com/vintagecrib/backend/internal/domain/crosspost"
	"github.com/vintagecrib/backend/internal/domain/shared"
	"github.com/vintagecrib/backend/internal/domain/subscription"
	"github.com/vintagecrib/backend/internal/interfaces/http/dto"
	"github.com/vintagecrib/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getSellerID extracts the authenticated seller ID from the context
func getSellerID(c *gin.Context) (uuid.UUID, error) {
	if sellerID, ok := middleware.GetSellerID(c); ok {
		return sellerID, nil
	}
	// Development fallback when the auth middleware is not installed
	if header := c.GetHeader("X-Seller-ID"); header != "" {
		return uuid.Parse(header)
	}
	return uuid.Nil, errors.New("seller ID not found in context")
}

// Success sends a 200 success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode sends an error response, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, code, message string) {
	h.Error(c, http.StatusForbidden, code, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and application errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, err.Error())
		return
	}

	switch {
	case errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, subscription.ErrSellerNotFound),
		errors.Is(err, crosspost.ErrRecordNotFound):
		h.NotFound(c, err.Error())

	case errors.Is(err, crosspost.ErrInvalidPlatform),
		errors.Is(err, appcrosspost.ErrNoPlatforms),
		errors.Is(err, catalog.ErrInvalidItemData),
		errors.Is(err, catalog.ErrInvalidSellerID):
		h.BadRequest(c, err.Error())

	case errors.Is(err, appcrosspost.ErrNotItemOwner):
		h.Forbidden(c, dto.ErrCodeForbidden, err.Error())

	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
