package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meridiantrade/catalog-services/internal/config"
	"github.com/meridiantrade/catalog-services/internal/models"
	"github.com/meridiantrade/catalog-services/internal/sessions"
	"github.com/meridiantrade/catalog-services/internal/tokens"
	"github.com/meridiantrade/catalog-services/internal/users"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

// LoginRequest is the admin panel's username/password form.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthHandler serves admin login, token refresh and logout.
type AuthHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	tokens      *tokens.Manager
	blacklist   *sessions.Blacklist
}

func NewAuthHandler(cfg *config.Config, u *users.Service, s *sessions.Service, tm *tokens.Manager, bl *sessions.Blacklist) *AuthHandler {
	return &AuthHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, tokens: tm, blacklist: bl}
}

// Register mounts the public auth routes on rg (the /api/admin group).
func (h *AuthHandler) Register(rg gin.IRouter) {
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
	rg.POST("/logout", h.Logout)
}

// RegisterProtected mounts routes that need a verified token.
func (h *AuthHandler) RegisterProtected(rg gin.IRouter) {
	rg.GET("/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	admin, err := h.usersSvc.Authenticate(ctx, req.Username, req.Password)
	switch {
	case errors.Is(err, users.ErrLoginDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login is not configured"})
		return
	case errors.Is(err, users.ErrInvalidCredentials):
		logger.Warnf("admin login rejected for %q from %s", req.Username, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	case err != nil:
		logger.Errorf("admin login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	refresh, err := h.sessionsSvc.CreateSession(ctx, admin.Sub, admin.Username, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	h.issue(c, admin, refresh)
}

func (h *AuthHandler) issue(c *gin.Context, admin *models.Admin, refresh string) {
	access, _, err := h.tokens.GenerateAccessToken(admin)
	if err != nil {
		if errors.Is(err, tokens.ErrNoSecret) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin login is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresIn":    int(h.tokens.TTL().Seconds()),
		"admin":        admin,
	})
}

// Refresh rotates the refresh token and returns a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	sess, next, err := h.sessionsSvc.Rotate(ctx, req.RefreshToken, h.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		logger.Errorf("refresh: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	admin, err := h.usersSvc.GetBySub(ctx, sess.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "admin lookup failed"})
		return
	}
	if admin == nil {
		admin = &models.Admin{Sub: sess.Subject, Username: sess.Username, Source: models.SourceLocal}
	}
	h.issue(c, admin, next)
}

// Logout deletes the refresh session and blacklists the bearer token, if
// one was sent, until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if at, ok := middleware.BearerToken(c.GetHeader("Authorization")); ok {
		if exp, err := tokens.ExpiresAt(at); err == nil {
			if err := h.blacklist.Add(ctx, at, time.Until(exp)); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist access token"})
				return
			}
		}
	}
	if err := h.sessionsSvc.DeleteRefresh(ctx, req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the caller's claims. Keycloak users are recorded on first sight.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.Claims(c)
	if iss, _ := claims["iss"].(string); iss != tokens.Issuer {
		if _, err := h.usersSvc.UpsertFromClaims(c.Request.Context(), claims); err != nil {
			logger.Warnf("record keycloak admin: %v", err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"claims": claims})
}
