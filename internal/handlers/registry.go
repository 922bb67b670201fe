package handlers

import "threadswap_backend/internal/services"

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Wardrobe   *WardrobeHandler
	Swap       *SwapHandler
	Collection *CollectionHandler
	Creator    *CreatorHandler
	Shipping   *ShippingHandler
	AI         *AIHandler
	Upload     *UploadHandler
	Health     *HealthHandler
}

func NewAppHandlers(container *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		Auth:       NewAuthHandler(base, container.User),
		User:       NewUserHandler(base, container.User),
		Wardrobe:   NewWardrobeHandler(base, container.Wardrobe),
		Swap:       NewSwapHandler(base, container.Swap),
		Collection: NewCollectionHandler(base, container.Collection),
		Creator:    NewCreatorHandler(base, container.Creator),
		Shipping:   NewShippingHandler(base, container.Shipping),
		AI:         NewAIHandler(base, container.AI),
		Upload:     NewUploadHandler(base, container.Upload),
		Health:     NewHealthHandler(base),
	}
}
