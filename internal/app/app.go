package app

import (
	"fmt"

	"threadswap_backend/internal/ai"
	"threadswap_backend/internal/config"
	"threadswap_backend/internal/email"
	"threadswap_backend/internal/handlers"
	"threadswap_backend/internal/logger"
	"threadswap_backend/internal/models"
	"threadswap_backend/internal/payments"
	"threadswap_backend/internal/routes"
	"threadswap_backend/internal/services"
	"threadswap_backend/internal/storage"
	"threadswap_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Run wires everything and blocks serving HTTP.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		apperrors.SetDebug(true)
	}

	db, err := openDatabase(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	providers, err := buildProviders(cfg)
	if err != nil {
		return fmt.Errorf("building providers: %w", err)
	}

	container := services.NewServiceContainer(db, providers)
	router := routes.Setup(db, handlers.NewAppHandlers(container))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

func openDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.WardrobeItem{},
		&models.ItemImage{},
		&models.ItemHistory{},
		&models.SwapRequest{},
		&models.SwapMessage{},
		&models.Collection{},
		&models.CollectionItem{},
		&models.CreatorProfile{},
		&models.Promotion{},
		&models.Shipment{},
	)
}

func buildProviders(cfg *config.Config) (services.Providers, error) {
	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return services.Providers{}, err
	}

	var mailer email.Provider = &email.MockProvider{}
	if cfg.Email.Enabled {
		smtp, err := email.NewSMTPProvider(&email.Config{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			return services.Providers{}, err
		}
		mailer = smtp
	}

	return services.Providers{
		Payments: payments.NewStripeProvider(
			cfg.Stripe.SecretKey,
			cfg.Stripe.OnboardingRefresh,
			cfg.Stripe.OnboardingReturn,
		),
		Analyzer: ai.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model),
		Mailer:   mailer,
		Storage:  store,
	}, nil
}
