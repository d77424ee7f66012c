// Package config provides configuration for the webhook receiver binary.
// Values are loaded from environment variables with sensible defaults and
// validated before the server starts.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//   - WEBHOOK_TOLERANCE: Freshness window for timestamped providers,
//     as a Go duration (default: 5m)
//   - WEBHOOK_MAX_BODY: Maximum accepted body size in bytes (default: 65536)
//
// Provider Secrets (a provider is enabled when its secret is set; secrets
// separated by commas form a rotation set):
//   - GITHUB_WEBHOOK_SECRET: GitHub HMAC secret(s)
//   - STRIPE_WEBHOOK_SECRET: Stripe signing secret(s)
//   - SLACK_SIGNING_SECRET: Slack signing secret(s)
//   - SHOPIFY_WEBHOOK_SECRET: Shopify shared secret(s)
//   - DISCORD_PUBLIC_KEY: Discord application public key (hex)
//   - SENDGRID_PUBLIC_KEY: SendGrid verification key (base64)
//   - STANDARD_WEBHOOK_SECRET: Standard Webhooks "whsec_" secret(s)
//   - STANDARD_HEADER_PREFIX: Header-name prefix override (default: webhook-)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "webhook-verify/internal/common/errors"
)

// Config holds all configuration values for the webhook receiver
type Config struct {
	// Application settings
	Port        string        // Server port number
	LogLevel    string        // Logging level (debug, info, warn, error)
	Tolerance   time.Duration // Freshness window for timestamped providers
	MaxBodySize int64         // Maximum accepted request body in bytes

	// Symmetric provider secrets; comma-separated values form rotation sets
	GitHubSecrets   []string
	StripeSecrets   []string
	SlackSecrets    []string
	ShopifySecrets  []string
	StandardSecrets []string

	// Asymmetric provider keys
	DiscordPublicKey  string // hex-encoded Ed25519 key
	SendGridPublicKey string // base64-encoded ECDSA key

	// Standard Webhooks header-name prefix (e.g. "svix-")
	StandardHeaderPrefix string
}

// Load creates a Config from environment variables. Call Validate on the
// result before use.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Tolerance:   getDurationEnv("WEBHOOK_TOLERANCE", 5*time.Minute),
		MaxBodySize: getInt64Env("WEBHOOK_MAX_BODY", 64*1024),

		GitHubSecrets:   splitSecrets(os.Getenv("GITHUB_WEBHOOK_SECRET")),
		StripeSecrets:   splitSecrets(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		SlackSecrets:    splitSecrets(os.Getenv("SLACK_SIGNING_SECRET")),
		ShopifySecrets:  splitSecrets(os.Getenv("SHOPIFY_WEBHOOK_SECRET")),
		StandardSecrets: splitSecrets(os.Getenv("STANDARD_WEBHOOK_SECRET")),

		DiscordPublicKey:  os.Getenv("DISCORD_PUBLIC_KEY"),
		SendGridPublicKey: os.Getenv("SENDGRID_PUBLIC_KEY"),

		StandardHeaderPrefix: getEnv("STANDARD_HEADER_PREFIX", "webhook-"),
	}
}

// Validate checks that the configuration can serve at least one provider
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("PORT must be a number, got %q", c.Port))
	}

	if c.Tolerance <= 0 {
		return apperrors.ConfigError(fmt.Sprintf("WEBHOOK_TOLERANCE must be positive, got %s", c.Tolerance))
	}

	if c.MaxBodySize <= 0 {
		return apperrors.ConfigError(fmt.Sprintf("WEBHOOK_MAX_BODY must be positive, got %d", c.MaxBodySize))
	}

	if !c.anyProviderConfigured() {
		return apperrors.ConfigError("no webhook provider configured: set at least one provider secret")
	}

	return nil
}

func (c *Config) anyProviderConfigured() bool {
	return len(c.GitHubSecrets) > 0 ||
		len(c.StripeSecrets) > 0 ||
		len(c.SlackSecrets) > 0 ||
		len(c.ShopifySecrets) > 0 ||
		len(c.StandardSecrets) > 0 ||
		c.DiscordPublicKey != "" ||
		c.SendGridPublicKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getInt64Env(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func splitSecrets(value string) []string {
	if value == "" {
		return nil
	}
	var secrets []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			secrets = append(secrets, trimmed)
		}
	}
	return secrets
}
