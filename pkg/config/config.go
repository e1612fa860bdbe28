package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string
	HTTPPort int

	// Outbound publish leg.
	PublishURL    string
	PublishAPIKey string
	PublishSource string

	// Inbound webhook verification.
	WebhookSecret string

	// Optional image enrichment; both must be set to enable it.
	ShopifyAPIBase    string
	ShopifyAdminToken string

	// Optional local broadcast forwarding leg.
	BroadcastAMQPURL  string
	BroadcastExchange string
}

func Load() Config {
	// Load .env file if exists
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		PublishURL:    getEnv("PUBLISH_URL", "https://hkdk.events/publish"),
		PublishAPIKey: getEnv("PUBLISH_API_KEY", ""),
		PublishSource: getEnv("PUBLISH_SOURCE", "shopify-notifications-publish"),

		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),

		ShopifyAPIBase:    getEnv("SHOPIFY_API_BASE", ""),
		ShopifyAdminToken: getEnv("SHOPIFY_ADMIN_TOKEN", ""),

		BroadcastAMQPURL:  getEnv("BROADCAST_AMQP_URL", ""),
		BroadcastExchange: getEnv("BROADCAST_EXCHANGE", "order-notifications"),
	}
}

// Validate reports missing required credentials. Startup is the only caller;
// a failure there is fatal.
func (c Config) Validate() error {
	if c.PublishAPIKey == "" {
		return fmt.Errorf("PUBLISH_API_KEY is required")
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required")
	}
	return nil
}

// ImagesEnabled reports whether the Admin API credentials needed for image
// enrichment are configured.
func (c Config) ImagesEnabled() bool {
	return c.ShopifyAPIBase != "" && c.ShopifyAdminToken != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
