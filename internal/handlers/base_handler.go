package handlers

import (
	"net/http"
	"strconv"

	"threadswap_backend/internal/models"
	"threadswap_backend/internal/validator"
	"threadswap_backend/pkg/apperrors"
	"threadswap_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler carries the helpers every HTTP handler embeds.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{validator: validator.New()}
}

// GetDB pulls the request-scoped database handle.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	if db, exists := c.Get(string(contextkeys.DBContextKey)); exists {
		return db.(*gorm.DB)
	}
	return nil
}

// BindAndValidateJSON binds the request body and runs struct validation,
// writing the 400 itself on failure.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err))
		return false
	}
	return true
}

// BindAndValidateQuery binds query parameters and runs struct validation.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(err))
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the response envelope.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// CurrentUserID returns the authenticated caller's id. Routes behind
// AuthMiddleware always have one; its absence is a 401.
func (h *BaseHandler) CurrentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(string(contextkeys.UserIDContextKey))
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// CurrentTier returns the caller's membership tier claim.
func (h *BaseHandler) CurrentTier(c *gin.Context) models.Tier {
	tier := c.GetString(string(contextkeys.TierContextKey))
	if tier == "" {
		return models.TierBasic
	}
	return models.Tier(tier)
}

// ParsePagination reads page/per_page, clamped to sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return perPage, (page - 1) * perPage
}

// Success writes the success envelope with a payload.
func (h *BaseHandler) Success(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK writes a 200 success envelope.
func (h *BaseHandler) OK(c *gin.Context, payload gin.H) {
	h.Success(c, http.StatusOK, payload)
}

// Created writes a 201 success envelope.
func (h *BaseHandler) Created(c *gin.Context, payload gin.H) {
	h.Success(c, http.StatusCreated, payload)
}
