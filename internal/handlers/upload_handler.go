package handlers

import (
	"io"

	"threadswap_backend/internal/middleware"
	"threadswap_backend/internal/services"
	"threadswap_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	*BaseHandler
	uploads services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploads services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploads: uploads}
}

func (h *UploadHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads", middleware.AuthMiddleware())
	{
		uploads.POST("", h.Upload)
		uploads.GET("/*path", h.SignedURL)
		uploads.DELETE("/*path", h.Delete)
	}

	// Served without auth: local-storage asset URLs resolve here.
	r.GET("/files/*path", h.Serve)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("file is required"))
		return
	}
	defer file.Close()

	result, err := h.uploads.UploadImage(
		c.Request.Context(),
		userID,
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, gin.H{"file": result})
}

func (h *UploadHandler) SignedURL(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	path := trimLeadingSlash(c.Param("path"))
	url, err := h.uploads.SignedURL(c.Request.Context(), userID, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"url": url})
}

func (h *UploadHandler) Delete(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	path := trimLeadingSlash(c.Param("path"))
	if err := h.uploads.DeleteFile(c.Request.Context(), userID, path); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "file deleted"})
}

func (h *UploadHandler) Serve(c *gin.Context) {
	path := trimLeadingSlash(c.Param("path"))

	reader, err := h.uploads.GetFile(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Status(200)
	_, _ = io.Copy(c.Writer, reader)
}

func trimLeadingSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}
