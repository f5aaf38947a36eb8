package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Payment gateway selection. Exactly one strategy is active per deployment.
const (
	PaymentModeCheckout = "checkout" // hosted checkout session, redirect flow
	PaymentModeIntent   = "intent"   // payment intent + embedded element
	PaymentModeDemo     = "demo"     // local development only, no provider calls
)

// Config holds all configuration values. It is loaded once in the command
// entrypoint and injected into constructors; business code never reads the
// environment directly.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// Stripe configuration.
	StripeSecretKey      string `mapstructure:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`
	PaymentMode          string `mapstructure:"PAYMENT_MODE"`
	Currency             string `mapstructure:"CURRENCY"`
	CheckoutSuccessURL   string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL    string `mapstructure:"CHECKOUT_CANCEL_URL"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads config.yaml (if present) and the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "errorfree.db")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("PAYMENT_MODE", PaymentModeCheckout)
	v.SetDefault("CURRENCY", "gbp")
	v.SetDefault("CHECKOUT_SUCCESS_URL", "http://localhost:5173/booking/success")
	v.SetDefault("CHECKOUT_CANCEL_URL", "http://localhost:5173/booking/cancelled")

	// Bind explicitly so AutomaticEnv works without a config file.
	for _, key := range []string{
		"APP_PORT", "ENV", "LOG_LEVEL", "DATABASE_URL",
		"JWT_SECRET", "JWT_TTL_HOURS",
		"STRIPE_SECRET_KEY", "STRIPE_PUBLISHABLE_KEY",
		"PAYMENT_MODE", "CURRENCY",
		"CHECKOUT_SUCCESS_URL", "CHECKOUT_CANCEL_URL",
		"CORS_ALLOWED_ORIGINS",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	switch cfg.PaymentMode {
	case PaymentModeCheckout, PaymentModeIntent, PaymentModeDemo:
	default:
		return nil, fmt.Errorf("invalid PAYMENT_MODE %q", cfg.PaymentMode)
	}
	if cfg.PaymentMode != PaymentModeDemo && cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_MODE=%s", cfg.PaymentMode)
	}

	return &cfg, nil
}
