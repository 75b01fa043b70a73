package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/meridiantrade/catalog-services/internal/app"
	"github.com/meridiantrade/catalog-services/internal/config"
	contactservice "github.com/meridiantrade/catalog-services/internal/contact/service"
	"github.com/meridiantrade/catalog-services/internal/oidc"
	"github.com/meridiantrade/catalog-services/internal/storage"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: keycloak=%v mongo=%v redis=%v minio=%v smtp=%v",
		cfg.Keycloak.URL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Mail.Host != "")

	ctx := context.Background()
	stores := app.OpenStores(ctx, cfg)
	defer stores.Close(context.Background())

	if cfg.Chat.SeedFAQs {
		stores.FAQs.EnsureSeeded(ctx)
	}

	deps := app.Deps{
		Stores: stores,
		Redis:  connectRedis(ctx, cfg),
		Images: connectImages(ctx, cfg),
		SSO:    ssoVerifier(ctx, cfg),
	}
	if m := contactservice.NewSMTPMailer(cfg.Mail); m != nil {
		deps.Mailer = m
	} else {
		logger.Warnf("SMTP_HOST or MAIL_TO not set; contact messages are stored but not emailed")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := app.NewRouter(cfg, deps)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting catalog service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}

// connectRedis returns nil when Redis is not configured or not reachable;
// sessions then live in the document store and logout cannot revoke
// access tokens early.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		_ = client.Close()
		return nil
	}
	logger.Infof("Connected to Redis: %s", cfg.Redis.Addr())
	return client
}

func connectImages(ctx context.Context, cfg *config.Config) storage.ImageStore {
	s, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			logger.Infof("MINIO_ENDPOINT not set; image uploads disabled")
		} else {
			logger.Warnf("image storage unavailable: %v", err)
		}
		return nil
	}
	return s
}

// ssoVerifier accepts Keycloak tokens carrying the admin realm role. The
// unsigned-token verifier is only honoured outside production.
func ssoVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	kc := cfg.Keycloak
	if kc.URL != "" {
		ver, err := oidc.NewVerifier(ctx, kc.Issuer(), kc.ClientID, kc.AdminRole)
		if err == nil {
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if kc.AllowInsecure {
		if cfg.Server.Environment == "production" {
			logger.Warnf("KEYCLOAK_ALLOW_INSECURE_TOKEN ignored in production")
			return nil
		}
		logger.Warn("enabling insecure OIDC verifier (development mode)")
		return oidc.NewInsecureVerifier(kc.AdminRole)
	}
	return nil
}
