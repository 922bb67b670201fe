package routes

import (
	"threadswap_backend/internal/handlers"
	"threadswap_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup builds the engine with the shared middleware chain and mounts every
// handler group under /api/v1.
func Setup(db *gorm.DB, appHandlers *handlers.AppHandlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	api := router.Group("/api/v1")

	appHandlers.Health.RegisterRoutes(api)
	appHandlers.Auth.RegisterRoutes(api)
	appHandlers.User.RegisterRoutes(api)
	appHandlers.Wardrobe.RegisterRoutes(api)
	appHandlers.Swap.RegisterRoutes(api)
	appHandlers.Collection.RegisterRoutes(api)
	appHandlers.Creator.RegisterRoutes(api)
	appHandlers.Shipping.RegisterRoutes(api)
	appHandlers.AI.RegisterRoutes(api)
	appHandlers.Upload.RegisterRoutes(api)

	return router
}
