package handlers

import (
	"strconv"

	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	creators services.CreatorService
}

func NewCreatorHandler(base *BaseHandler, creators services.CreatorService) *CreatorHandler {
	return &CreatorHandler{BaseHandler: base, creators: creators}
}

func (h *CreatorHandler) RegisterRoutes(r *gin.RouterGroup) {
	creators := r.Group("/creators", middleware.AuthMiddleware())
	{
		creators.POST("", h.CreateStorefront)
		creators.GET("/me", h.GetOwnStorefront)
		creators.PATCH("/me", h.UpdateStorefront)
		creators.GET("/:id", h.GetStorefront)

		creators.POST("/me/onboarding", h.StartOnboarding)
		creators.GET("/me/onboarding", h.OnboardingStatus)
		creators.GET("/me/payouts", h.ListPayouts)
		creators.POST("/me/payouts", h.RequestPayout)

		creators.GET("/me/promotions", h.ListPromotions)
		creators.POST("/me/promotions", h.CreatePromotion)
		creators.PATCH("/me/promotions/:promotionId", h.UpdatePromotion)
		creators.DELETE("/me/promotions/:promotionId", h.DeletePromotion)
	}

	r.POST("/purchases", middleware.AuthMiddleware(), h.Purchase)
}

func (h *CreatorHandler) CreateStorefront(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreateStorefrontInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	profile, err := h.creators.CreateStorefront(userID, h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"storefront": profile})
}

func (h *CreatorHandler) GetOwnStorefront(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	profile, err := h.creators.GetOwnStorefront(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"storefront": profile})
}

func (h *CreatorHandler) GetStorefront(c *gin.Context) {
	profile, err := h.creators.GetStorefront(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"storefront": profile})
}

func (h *CreatorHandler) UpdateStorefront(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UpdateStorefrontInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	profile, err := h.creators.UpdateStorefront(userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"storefront": profile})
}

func (h *CreatorHandler) StartOnboarding(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	url, err := h.creators.StartOnboarding(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"onboarding_url": url})
}

func (h *CreatorHandler) OnboardingStatus(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	status, err := h.creators.RefreshOnboardingStatus(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"status": status})
}

func (h *CreatorHandler) ListPayouts(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	payouts, err := h.creators.ListPayouts(userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"payouts": payouts})
}

func (h *CreatorHandler) RequestPayout(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input struct {
		AmountCents int64 `json:"amount_cents" validate:"required,gt=0"`
	}
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	payoutID, err := h.creators.RequestPayout(userID, input.AmountCents)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"payout_id": payoutID})
}

func (h *CreatorHandler) ListPromotions(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	promotions, err := h.creators.ListPromotions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"promotions": promotions})
}

func (h *CreatorHandler) CreatePromotion(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.CreatePromotionInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	promotion, err := h.creators.CreatePromotion(userID, h.CurrentTier(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"promotion": promotion})
}

func (h *CreatorHandler) UpdatePromotion(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.UpdatePromotionInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	promotion, err := h.creators.UpdatePromotion(userID, c.Param("promotionId"), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"promotion": promotion})
}

func (h *CreatorHandler) DeletePromotion(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.creators.DeletePromotion(userID, c.Param("promotionId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "promotion deleted"})
}

func (h *CreatorHandler) Purchase(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.PurchaseInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	result, err := h.creators.Purchase(userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"purchase": result})
}
