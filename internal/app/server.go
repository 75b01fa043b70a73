package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/meridiantrade/catalog-services/handlers"
	cataloghandler "github.com/meridiantrade/catalog-services/internal/catalog/handler"
	"github.com/meridiantrade/catalog-services/internal/chat"
	chathandler "github.com/meridiantrade/catalog-services/internal/chat/handler"
	"github.com/meridiantrade/catalog-services/internal/config"
	contacthandler "github.com/meridiantrade/catalog-services/internal/contact/handler"
	contactservice "github.com/meridiantrade/catalog-services/internal/contact/service"
	"github.com/meridiantrade/catalog-services/internal/sessions"
	"github.com/meridiantrade/catalog-services/internal/storage"
	"github.com/meridiantrade/catalog-services/internal/tokens"
	"github.com/meridiantrade/catalog-services/internal/users"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

const sessionPrefix = "admin:session:"

var startTime = time.Now()

// Deps are the optional external services the router is built on. Any of
// Redis, Images, Mailer and SSO may be nil.
type Deps struct {
	Stores *Stores
	Redis  *redis.Client
	Images storage.ImageStore
	Mailer contactservice.Mailer
	SSO    middleware.Verifier
}

// NewResponder builds the chat pipeline over the stores.
func NewResponder(cfg *config.Config, s *Stores) *chat.Responder {
	return chat.NewResponder(s.FAQs, chat.NewClassifier(s.Catalog), cfg.Chat.FallbackText)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func rateLimit(cfg *config.Config, client *redis.Client, scope string) []gin.HandlerFunc {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil
	}
	if rl.UseRedis && client != nil {
		win := time.Duration(rl.WindowSeconds) * time.Second
		return []gin.HandlerFunc{middleware.RedisRateLimitMiddleware(client, scope, rl.RPS, rl.Burst, win)}
	}
	return []gin.HandlerFunc{middleware.RateLimitMiddleware(rl.RPS, rl.Burst)}
}

// NewRouter wires every route of the service. Collectors must already be
// registered with the default registry for /metrics to report them.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())

	s := d.Stores
	var sessionRepo sessions.Repository = s.Sessions
	if d.Redis != nil {
		sessionRepo = sessions.NewRedisRepository(d.Redis, sessionPrefix)
	}
	sessionsSvc := sessions.NewService(sessionRepo)
	blacklist := sessions.NewBlacklist(d.Redis)
	usersSvc := users.NewService(s.Admins, cfg.Admin)
	tm := tokens.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	contacts := contactservice.NewService(s.Contacts, d.Mailer)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readiness(s, d))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	cataloghandler.RegisterCatalogRoutes(r, s.Catalog)
	chathandler.RegisterChatRoutes(r, NewResponder(cfg, s), s.FAQs, rateLimit(cfg, d.Redis, "chat")...)
	contacthandler.RegisterContactRoutes(r, contacts, rateLimit(cfg, d.Redis, "contact")...)

	admin := r.Group("/api/admin")
	auth := handlers.NewAuthHandler(cfg, usersSvc, sessionsSvc, tm, blacklist)
	auth.Register(admin.Group("", rateLimit(cfg, d.Redis, "admin-auth")...))

	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(middleware.Chain(tm, d.SSO), blacklist))
	auth.RegisterProtected(protected)
	handlers.NewAdminHandler(s.Catalog, s.FAQs, d.Images, contacts).Register(protected)

	return r
}

type pinger interface {
	Ping(ctx context.Context) error
}

// readiness reports 503 when the document store, or a configured Redis or
// image store, cannot be reached.
func readiness(s *Stores, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		deps := map[string]bool{}
		ready := true
		check := func(name string, p pinger) {
			if err := p.Ping(ctx); err != nil {
				logger.Warnf("readiness: %s: %v", name, err)
				deps[name] = false
				ready = false
				return
			}
			deps[name] = true
		}
		check("storage", s)
		if d.Redis != nil {
			check("redis", redisPinger{d.Redis})
		}
		if d.Images != nil {
			check("images", d.Images)
		}
		deps["sso"] = d.SSO != nil
		deps["mail"] = d.Mailer != nil

		status, code := "ready", http.StatusOK
		if !ready {
			status, code = "not_ready", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "deps": deps, "uptime": time.Since(startTime).String()})
	}
}

type redisPinger struct{ c *redis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.c.Ping(ctx).Err() }
