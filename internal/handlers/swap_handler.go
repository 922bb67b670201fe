package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SwapHandler struct {
	*BaseHandler
	swaps services.SwapService
}

func NewSwapHandler(base *BaseHandler, swaps services.SwapService) *SwapHandler {
	return &SwapHandler{BaseHandler: base, swaps: swaps}
}

func (h *SwapHandler) RegisterRoutes(r *gin.RouterGroup) {
	swaps := r.Group("/swaps", middleware.AuthMiddleware())
	{
		swaps.GET("", h.ListSwaps)
		swaps.POST("", h.CreateSwap)
		swaps.GET("/:id", h.GetSwap)

		swaps.POST("/:id/accept", h.Accept)
		swaps.POST("/:id/decline", h.Decline)
		swaps.POST("/:id/complete", h.Complete)
		swaps.POST("/:id/cancel", h.Cancel)

		swaps.GET("/:id/messages", h.ListMessages)
		swaps.POST("/:id/messages", h.SendMessage)
	}
}

func (h *SwapHandler) ListSwaps(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	limit, offset := h.ParsePagination(c)

	swaps, total, err := h.swaps.ListSwaps(repositories.SwapListFilter{
		UserID: userID,
		Role:   c.Query("role"),
		Status: models.SwapStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"swaps": swaps, "total": total})
}

func (h *SwapHandler) CreateSwap(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreateSwapInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	swap, err := h.swaps.CreateSwap(userID, h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"swap": swap})
}

func (h *SwapHandler) GetSwap(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	swap, err := h.swaps.GetSwap(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"swap": swap})
}

func (h *SwapHandler) Accept(c *gin.Context) {
	h.transition(c, h.swaps.Accept)
}

func (h *SwapHandler) Decline(c *gin.Context) {
	h.transition(c, h.swaps.Decline)
}

func (h *SwapHandler) Complete(c *gin.Context) {
	h.transition(c, h.swaps.Complete)
}

func (h *SwapHandler) Cancel(c *gin.Context) {
	h.transition(c, h.swaps.Cancel)
}

func (h *SwapHandler) transition(c *gin.Context, fn func(userID, swapID string) (*models.SwapRequest, error)) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	swap, err := fn(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"swap": swap})
}

func (h *SwapHandler) ListMessages(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	messages, err := h.swaps.ListMessages(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"messages": messages})
}

func (h *SwapHandler) SendMessage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.SwapMessageInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	message, err := h.swaps.SendMessage(userID, c.Param("id"), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": message})
}
