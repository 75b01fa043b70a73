package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/meridiantrade/catalog-services/internal/config"
	"github.com/meridiantrade/catalog-services/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("local admin login is not configured")
)

// Service authenticates admin-panel users and keeps their account records.
type Service struct {
	repo     Repository
	username string
	password string
}

func NewService(r Repository, cfg config.AdminConfig) *Service {
	return &Service{repo: r, username: cfg.Username, password: cfg.Password}
}

// LocalSub is the subject used for the configured admin account.
func LocalSub(username string) string { return "local:" + username }

// Authenticate checks username and password against the configured admin
// account. The configured password may be a bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	if s.username == "" || s.password == "" {
		return nil, ErrLoginDisabled
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	if !checkPassword(s.password, password) || !userOK {
		return nil, ErrInvalidCredentials
	}
	return s.repo.UpsertBySub(ctx, &models.Admin{
		Sub:      LocalSub(username),
		Username: username,
		Name:     username,
		Source:   models.SourceLocal,
	})
}

func checkPassword(configured, given string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

// UpsertFromClaims records a Keycloak user from verified token claims. It
// returns nil when the claims carry no subject.
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.Admin, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, nil
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	username, _ := claims["preferred_username"].(string)
	if username == "" {
		username = email
	}
	return s.repo.UpsertBySub(ctx, &models.Admin{
		Sub:      sub,
		Username: username,
		Email:    email,
		Name:     name,
		Source:   models.SourceOIDC,
	})
}

func (s *Service) GetBySub(ctx context.Context, sub string) (*models.Admin, error) {
	return s.repo.GetBySub(ctx, sub)
}
