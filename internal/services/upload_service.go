package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"threadswap_backend/internal/config"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/storage"
	"threadswap_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadResult is what the client gets back after a successful upload.
type UploadResult struct {
	Path string `json:"path"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type UploadService interface {
	// UploadImage stores an image under the user's prefix after policy
	// checks (size, content type).
	UploadImage(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*UploadResult, error)

	// SignedURL returns a time-limited download link for one of the
	// user's own files.
	SignedURL(ctx context.Context, userID, filePath string) (string, error)

	DeleteFile(ctx context.Context, userID, filePath string) error
	GetFile(ctx context.Context, filePath string) (io.ReadCloser, error)
}

const signedURLTTL = 15 * time.Minute

type uploadService struct {
	store storage.Storage
}

func NewUploadService(store storage.Storage) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) UploadImage(ctx context.Context, userID, filename, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	cfg := config.GetConfig()

	if size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !allowedType(contentType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrInvalidFileType
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = extensionFor(contentType)
	}
	filePath := fmt.Sprintf("users/%s/%s%s", userID, uuid.NewString(), ext)

	if err := s.store.Save(ctx, filePath, reader, contentType); err != nil {
		logger.Error("file upload failed", "user_id", userID, "path", filePath, "error", err)
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, filePath)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &UploadResult{Path: filePath, URL: url, Size: size}, nil
}

func (s *uploadService) SignedURL(ctx context.Context, userID, filePath string) (string, error) {
	if !strings.HasPrefix(filePath, "users/"+userID+"/") {
		return "", apperrors.ErrInsufficientPermissions
	}

	exists, err := s.store.Exists(ctx, filePath)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if !exists {
		return "", apperrors.ErrNotFound(fmt.Errorf("file %s not found", filePath))
	}

	url, err := s.store.GetSignedURL(ctx, filePath, signedURLTTL)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

func (s *uploadService) DeleteFile(ctx context.Context, userID, filePath string) error {
	// Users can only delete files under their own prefix.
	if !strings.HasPrefix(filePath, "users/"+userID+"/") {
		return apperrors.ErrInsufficientPermissions
	}

	exists, err := s.store.Exists(ctx, filePath)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !exists {
		return apperrors.ErrNotFound(fmt.Errorf("file %s not found", filePath))
	}

	if err := s.store.Delete(ctx, filePath); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) GetFile(ctx context.Context, filePath string) (io.ReadCloser, error) {
	reader, err := s.store.Get(ctx, filePath)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return reader, nil
}

func allowedType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
