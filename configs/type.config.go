package config

import (
	"context"
	"sync"

	"checkout-hub/internal/common/enum"
	database "checkout-hub/internal/pkg/db"
	"checkout-hub/internal/pkg/rabbitmq"
	"checkout-hub/internal/pkg/redis"
	stripePkg "checkout-hub/internal/pkg/stripe"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv     enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort    int          `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL string       `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// Payment provider. An empty secret key leaves the provider
	// unconfigured; intent and checkout calls then fail with an
	// explicit error instead of a crash at boot.
	StripeSecretKey  string `env:"STRIPE_SECRET_KEY" envDefault:""`
	StripePublicKey  string `env:"STRIPE_PUBLIC_KEY" envDefault:""`
	StripeMerchantID string `env:"STRIPE_MERCHANT_ID" envDefault:""`

	// CheckoutAPIURL is where funnel sessions post completed tokens.
	// Empty means the local checkout endpoint.
	CheckoutAPIURL string `env:"CHECKOUT_API_URL" envDefault:""`
	PlanLabel      string `env:"PLAN_LABEL" envDefault:"Premium Plan"`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RabbitHost    string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort    int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser    string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass    string `env:"RABBIT_PASS" envDefault:"guest"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        int    `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"postgres"`
	DBPass        string `env:"DB_PASS" envDefault:""`
	DBName        string `env:"DB_NAME" envDefault:"postgres"`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx    *context.Context
	Cancel context.CancelFunc
	Wg     *sync.WaitGroup
	Env    *Config
	Db     *database.Database
	Rds    redis.IRedis
	Rb     *rabbitmq.ConnectionManager
	Stripe *stripePkg.StripeClient
}
