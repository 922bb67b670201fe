package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type WardrobeHandler struct {
	*BaseHandler
	wardrobe services.WardrobeService
}

func NewWardrobeHandler(base *BaseHandler, wardrobe services.WardrobeService) *WardrobeHandler {
	return &WardrobeHandler{BaseHandler: base, wardrobe: wardrobe}
}

func (h *WardrobeHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items", middleware.AuthMiddleware())
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)

		items.POST("/:id/images", h.AddImage)
		items.PUT("/:id/images/:imageId/primary", h.SetPrimaryImage)
		items.DELETE("/:id/images/:imageId", h.DeleteImage)

		items.GET("/:id/history", h.GetHistory)
	}
}

func (h *WardrobeHandler) ListItems(c *gin.Context) {
	limit, offset := h.ParsePagination(c)

	filter := repositories.ItemFilter{
		OwnerID:  c.Query("owner_id"),
		Category: c.Query("category"),
		Size:     c.Query("size"),
		Color:    c.Query("color"),
		Search:   c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	}
	if v := c.Query("available_for_swap"); v != "" {
		b := v == "true"
		filter.AvailableForSwap = &b
	}
	if v := c.Query("for_sale"); v != "" {
		b := v == "true"
		filter.ForSale = &b
	}

	items, total, err := h.wardrobe.ListItems(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"items": items, "total": total})
}

func (h *WardrobeHandler) CreateItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreateItemInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	item, err := h.wardrobe.CreateItem(userID, h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"item": item})
}

func (h *WardrobeHandler) GetItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	item, err := h.wardrobe.GetItem(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"item": item})
}

func (h *WardrobeHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UpdateItemInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	item, err := h.wardrobe.UpdateItem(userID, c.Param("id"), h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"item": item})
}

func (h *WardrobeHandler) DeleteItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.wardrobe.DeleteItem(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "item deleted"})
}

type addImageInput struct {
	URL       string `json:"url" validate:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

func (h *WardrobeHandler) AddImage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input addImageInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	image, err := h.wardrobe.AddImage(userID, c.Param("id"), input.URL, input.IsPrimary)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"image": image})
}

func (h *WardrobeHandler) SetPrimaryImage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.wardrobe.SetPrimaryImage(userID, c.Param("id"), c.Param("imageId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "primary image updated"})
}

func (h *WardrobeHandler) DeleteImage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.wardrobe.DeleteImage(userID, c.Param("id"), c.Param("imageId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "image deleted"})
}

func (h *WardrobeHandler) GetHistory(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	history, err := h.wardrobe.GetHistory(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"history": history})
}
