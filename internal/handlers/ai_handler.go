package handlers

import (
	"io"

	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"
	"threadswap_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// maxAnalyzeImageBytes caps the inline image payload for analysis requests.
const maxAnalyzeImageBytes = 8 << 20

type AIHandler struct {
	*BaseHandler
	ai services.AIService
}

func NewAIHandler(base *BaseHandler, ai services.AIService) *AIHandler {
	return &AIHandler{BaseHandler: base, ai: ai}
}

func (h *AIHandler) RegisterRoutes(r *gin.RouterGroup) {
	ai := r.Group("/ai", middleware.AuthMiddleware())
	{
		ai.POST("/analyze-image", h.AnalyzeImage)
		ai.POST("/describe", h.Describe)
		ai.GET("/credits", h.Credits)
	}
}

func (h *AIHandler) AnalyzeImage(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("image file is required"))
		return
	}
	defer file.Close()

	if header.Size > maxAnalyzeImageBytes {
		h.HandleServiceError(c, apperrors.ErrFileTooLarge)
		return
	}

	imageData, err := io.ReadAll(io.LimitReader(file, maxAnalyzeImageBytes))
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	result, err := h.ai.AnalyzeImage(c.Request.Context(), userID, imageData, mimeType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"analysis": result})
}

func (h *AIHandler) Describe(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var input services.DescribeInput
	if !h.BindAndValidateJSON(c, &input) {
		return
	}

	description, err := h.ai.GenerateDescription(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"description": description})
}

func (h *AIHandler) Credits(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	state, err := h.ai.CreditStatus(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"credits": state})
}
