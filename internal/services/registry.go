package services

import (
	"threadswap_backend/internal/ai"
	"threadswap_backend/internal/email"
	"threadswap_backend/internal/payments"
	"threadswap_backend/internal/repositories"
	"threadswap_backend/internal/storage"

	"gorm.io/gorm"
)

// ServiceContainer wires every service with its repositories and providers.
type ServiceContainer struct {
	User       UserService
	Wardrobe   WardrobeService
	Swap       SwapService
	Collection CollectionService
	Creator    CreatorService
	Shipping   ShippingService
	AI         AIService
	Upload     UploadService
}

// Providers are the external boundaries injected into the container. Tests
// swap these for fakes.
type Providers struct {
	Payments payments.Provider
	Analyzer ai.Analyzer
	Mailer   email.Provider
	Storage  storage.Storage
}

func NewServiceContainer(db *gorm.DB, providers Providers) *ServiceContainer {
	users := repositories.NewUserRepository(db)
	wardrobe := repositories.NewWardrobeRepository(db)
	swaps := repositories.NewSwapRepository(db)
	collections := repositories.NewCollectionRepository(db)
	creators := repositories.NewCreatorRepository(db)
	shipments := repositories.NewShipmentRepository(db)

	return &ServiceContainer{
		User:       NewUserService(users, wardrobe, collections, swaps),
		Wardrobe:   NewWardrobeService(wardrobe),
		Swap:       NewSwapService(swaps, wardrobe, users, providers.Mailer),
		Collection: NewCollectionService(collections, wardrobe),
		Creator:    NewCreatorService(creators, wardrobe, users, providers.Payments),
		Shipping:   NewShippingService(shipments, wardrobe, swaps),
		AI:         NewAIService(users, providers.Analyzer),
		Upload:     NewUploadService(providers.Storage),
	}
}
