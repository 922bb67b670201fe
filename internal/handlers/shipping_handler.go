package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ShippingHandler struct {
	*BaseHandler
	shipping services.ShippingService
}

func NewShippingHandler(base *BaseHandler, shipping services.ShippingService) *ShippingHandler {
	return &ShippingHandler{BaseHandler: base, shipping: shipping}
}

func (h *ShippingHandler) RegisterRoutes(r *gin.RouterGroup) {
	shipping := r.Group("/shipping", middleware.AuthMiddleware())
	{
		shipping.POST("/estimate", h.Estimate)
		shipping.POST("/labels", h.CreateLabel)
		shipping.GET("/track/:trackingNumber", h.Track)
	}
}

func (h *ShippingHandler) Estimate(c *gin.Context) {
	var input services.EstimateInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	quotes, err := h.shipping.Estimate(input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"quotes": quotes})
}

func (h *ShippingHandler) CreateLabel(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreateLabelInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	shipment, err := h.shipping.CreateLabel(userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"shipment": shipment})
}

func (h *ShippingHandler) Track(c *gin.Context) {
	info, err := h.shipping.Track(c.Param("trackingNumber"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"tracking": info})
}
