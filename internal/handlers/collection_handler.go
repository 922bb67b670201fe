package handlers

import (
	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct {
	*BaseHandler
	collections services.CollectionService
}

func NewCollectionHandler(base *BaseHandler, collections services.CollectionService) *CollectionHandler {
	return &CollectionHandler{BaseHandler: base, collections: collections}
}

func (h *CollectionHandler) RegisterRoutes(r *gin.RouterGroup) {
	collections := r.Group("/collections", middleware.AuthMiddleware())
	{
		collections.GET("", h.ListMine)
		collections.POST("", h.Create)
		collections.GET("/:id", h.Get)
		collections.PATCH("/:id", h.Update)
		collections.DELETE("/:id", h.Delete)

		collections.POST("/:id/items/:itemId", h.AddItem)
		collections.DELETE("/:id/items/:itemId", h.RemoveItem)
		collections.PUT("/:id/order", h.Reorder)
	}
}

func (h *CollectionHandler) ListMine(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	collections, err := h.collections.ListMine(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"collections": collections})
}

func (h *CollectionHandler) Create(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreateCollectionInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	collection, err := h.collections.Create(userID, h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"collection": collection})
}

func (h *CollectionHandler) Get(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	collection, err := h.collections.Get(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"collection": collection})
}

func (h *CollectionHandler) Update(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UpdateCollectionInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	collection, err := h.collections.Update(userID, c.Param("id"), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"collection": collection})
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.collections.Delete(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "collection deleted"})
}

func (h *CollectionHandler) AddItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.collections.AddItem(userID, c.Param("id"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"message": "item added"})
}

func (h *CollectionHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.collections.RemoveItem(userID, c.Param("id"), c.Param("itemId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "item removed"})
}

func (h *CollectionHandler) Reorder(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.ReorderInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	if err := h.collections.Reorder(userID, c.Param("id"), input); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "collection reordered"})
}
