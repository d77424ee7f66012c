package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"webhook-verify/internal/common/logging"
	"webhook-verify/internal/config"
	"webhook-verify/internal/middleware"
	"webhook-verify/internal/providers"
	"webhook-verify/internal/receiver"
	"webhook-verify/internal/verify"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logging.InitGlobalLogger()
	defer logging.MustSync()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	rc := receiver.New(
		receiver.WithMaxBodySize(cfg.MaxBodySize),
		receiver.WithLogger(logging.GetGlobalLogger()),
	)
	if err := registerProviders(rc, cfg); err != nil {
		log.Fatalf("Failed to configure providers: %v", err)
	}

	logging.Info("Webhook receiver configured",
		logging.Field{Key: "providers", Value: rc.Names()},
		logging.Duration("tolerance", cfg.Tolerance),
	)

	// Set up routes
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	rc.Routes(router)

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	}).Methods("GET")

	// Set up HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Info("Server starting", logging.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info("Shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logging.Info("Server exited")
}

// registerProviders builds a verifier for every provider the configuration
// enables and registers it on the receiver.
func registerProviders(rc *receiver.Receiver, cfg *config.Config) error {
	opts := []verify.Option{verify.WithTolerance(cfg.Tolerance)}

	if len(cfg.GitHubSecrets) > 0 {
		v, err := providers.NewGitHub(secretBytes(cfg.GitHubSecrets)...)
		if err != nil {
			return fmt.Errorf("github: %w", err)
		}
		rc.Register("github", v)
	}

	if len(cfg.StripeSecrets) > 0 {
		v, err := verify.New(providers.Stripe(), verify.NewKeyring(secretBytes(cfg.StripeSecrets)...), opts...)
		if err != nil {
			return fmt.Errorf("stripe: %w", err)
		}
		rc.Register("stripe", v)
	}

	if len(cfg.SlackSecrets) > 0 {
		v, err := verify.New(providers.Slack(), verify.NewKeyring(secretBytes(cfg.SlackSecrets)...), opts...)
		if err != nil {
			return fmt.Errorf("slack: %w", err)
		}
		rc.Register("slack", v)
	}

	if len(cfg.ShopifySecrets) > 0 {
		v, err := verify.New(providers.Shopify(), verify.NewKeyring(secretBytes(cfg.ShopifySecrets)...))
		if err != nil {
			return fmt.Errorf("shopify: %w", err)
		}
		rc.Register("shopify", v)
	}

	if len(cfg.StandardSecrets) > 0 {
		keys := make([][]byte, 0, len(cfg.StandardSecrets))
		for _, secret := range cfg.StandardSecrets {
			key, err := providers.DecodeStandardSecret(secret)
			if err != nil {
				return fmt.Errorf("standard: %w", err)
			}
			keys = append(keys, key)
		}
		v, err := verify.New(providers.StandardWithPrefix(cfg.StandardHeaderPrefix), verify.NewKeyring(keys...), opts...)
		if err != nil {
			return fmt.Errorf("standard: %w", err)
		}
		rc.Register("standard", v)
	}

	if cfg.DiscordPublicKey != "" {
		v, err := providers.NewDiscord(cfg.DiscordPublicKey, opts...)
		if err != nil {
			return fmt.Errorf("discord: %w", err)
		}
		rc.Register("discord", v)
	}

	if cfg.SendGridPublicKey != "" {
		v, err := providers.NewSendGrid(cfg.SendGridPublicKey, opts...)
		if err != nil {
			return fmt.Errorf("sendgrid: %w", err)
		}
		rc.Register("sendgrid", v)
	}

	return nil
}

func secretBytes(secrets []string) [][]byte {
	keys := make([][]byte, len(secrets))
	for i, secret := range secrets {
		keys[i] = []byte(secret)
	}
	return keys
}
