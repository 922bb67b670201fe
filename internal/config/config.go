package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	Stripe struct {
		SecretKey          string  `yaml:"secret_key"`
		PlatformFeePercent float64 `yaml:"platform_fee_percent"`
		Currency           string  `yaml:"currency"`
		OnboardingRefresh  string  `yaml:"onboarding_refresh_url"`
		OnboardingReturn   string  `yaml:"onboarding_return_url"`
	} `yaml:"stripe"`

	Gemini struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"gemini"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"` // local, s3
		BasePath  string `yaml:"base_path"`
		BaseURL   string `yaml:"base_url"`
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"` // bytes
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or builds the config entirely from
// environment variables when DATABASE_URL is set (test/deploy mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyEnvOverrides(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = getenvDefault("SERVER_ENV", "development")
	cfg.Server.Port, _ = strconv.Atoi(getenvDefault("SERVER_PORT", "8080"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLMinutes = 60

	applyEnvOverrides(&cfg)

	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = "usd"
	}
	if cfg.Stripe.PlatformFeePercent == 0 {
		cfg.Stripe.PlatformFeePercent = 10
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.0-flash-001"
	}

	cfg.Storage.Type = getenvDefault("STORAGE_TYPE", "local")
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
	}

	AppConfig = &cfg
}

// applyEnvOverrides lets secrets come from the environment regardless of the
// config source, so they never have to live in the yaml file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
