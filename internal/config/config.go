package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName       = "Wayfari"
	defaultAppEnv        = "development"
	defaultPort          = "5000"
	defaultLogLevel      = "info"
	defaultMongoDatabase = "WayfariDB"
	defaultShutdownDelay = 10 * time.Second

	// defaultTokenTTL is the fixed lifetime of issued identity tokens.
	// Expiry is the only invalidation mechanism; there is no revocation list.
	defaultTokenTTL = 4 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	MongoURI       string
	MongoDatabase  string
	RedisURL       string
	TokenSecret    string
	TokenTTL       time.Duration
	StripeSecret   string
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment (including a local
// .env file when present) and populates a Config instance.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		AppEnv:         strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		MongoURI:       os.Getenv("MONGODB_URI"),
		MongoDatabase:  getEnv("MONGODB_DB", defaultMongoDatabase),
		RedisURL:       os.Getenv("REDIS_URL"),
		TokenSecret:    os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:       defaultTokenTTL,
		StripeSecret:   os.Getenv("STRIPE_SECRET_KEY"),
		ShutdownPeriod: defaultShutdownDelay,
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownPeriod = d
	}

	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET must be set")
	}

	if cfg.MongoURI == "" && !cfg.IsDev() {
		return Config{}, fmt.Errorf("MONGODB_URI must be set when APP_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// IsDev reports whether the service runs in a development environment, where
// missing Mongo/Redis connections fall back to in-process substitutes.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
