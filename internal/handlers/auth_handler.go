package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	users services.UserService
}

func NewAuthHandler(base *BaseHandler, users services.UserService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, users: users}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(), h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	result, err := h.users.Register(input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.Created(c, gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	result, err := h.users.Login(input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{
		"user":          result.User,
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input refreshInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	result, err := h.users.Refresh(input.RefreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.OK(c, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.users.Logout(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "logged out"})
}
