package middleware

import (
	"strings"

	"threadswap_backend/internal/auth"
	"threadswap_backend/internal/logger"
	"threadswap_backend/pkg/apperrors"
	"threadswap_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token and stores the caller's identity
// and tier for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header required"))
			c.Abort()
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header must use the Bearer scheme"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		c.Set(string(contextkeys.TierContextKey), claims.Tier)

		// Thread the identity into the request logger too.
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
