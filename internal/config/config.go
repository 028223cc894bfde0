package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	MongoURL string `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME" envDefault:"storefront"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"your-secret-key"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"168h"`

	StripeAPIKey        string `env:"STRIPE_API_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	// Demo admin account seeded at startup when absent.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@shop.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

// Load reads the optional .env file and parses configuration from the
// environment. Missing keys fall back to the defaults above.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
