package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	users services.UserService
}

func NewUserHandler(base *BaseHandler, users services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("/me", h.GetMe)
		users.PATCH("/me", h.UpdateMe)
		users.GET("/me/usage", h.GetUsage)
		users.PUT("/me/tier", h.ChangeTier)
		users.GET("/:id", h.GetUser)
	}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"user": user})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	user, err := h.users.UpdateProfile(userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"user": user})
}

func (h *UserHandler) GetUsage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	usage, err := h.users.GetUsage(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"usage": usage})
}

type changeTierInput struct {
	Tier string `json:"tier" validate:"required,oneof=basic standard pro"`
}

func (h *UserHandler) ChangeTier(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input changeTierInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	user, err := h.users.ChangeTier(userID, models.Tier(input.Tier))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"user": user})
}

// GetUser is the public profile view: no email, no address, no credit state.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetProfile(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{"user": gin.H{
		"id":           user.ID,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"tier":         user.Tier,
		"created_at":   user.CreatedAt,
	}})
}
