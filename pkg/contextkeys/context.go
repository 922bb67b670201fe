package contextkeys

// ContextKey is the typed key used for values stored on request contexts.
type ContextKey string

const (
	// DBContextKey carries the *gorm.DB (pool or open transaction) for the request.
	DBContextKey ContextKey = "db"

	// UserIDContextKey carries the authenticated user's id.
	UserIDContextKey ContextKey = "userID"

	// TierContextKey carries the authenticated user's membership tier.
	TierContextKey ContextKey = "tier"
)
