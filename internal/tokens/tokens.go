package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridiantrade/catalog-services/internal/models"
	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

// Issuer is the iss claim of locally signed admin tokens.
const Issuer = "catalog-services"

var ErrNoSecret = errors.New("jwt secret is not configured")

// Manager signs and verifies HS256 admin access tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// GenerateAccessToken creates a signed access token for a and returns it with
// its expiry.
func (m *Manager) GenerateAccessToken(a *models.Admin) (string, time.Time, error) {
	if len(m.secret) == 0 {
		return "", time.Time{}, ErrNoSecret
	}
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := jwt.MapClaims{
		"iss":                Issuer,
		"sub":                a.Sub,
		"preferred_username": a.Username,
		"name":               a.Name,
		"email":              a.Email,
		"role":               "admin",
		"iat":                now.Unix(),
		"exp":                exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify implements middleware.Verifier for tokens issued by this Manager.
func (m *Manager) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	if len(m.secret) == 0 {
		return nil, ErrNoSecret
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return middleware.ClaimsMap(claims), nil
}

// ExpiresAt reads the exp claim without checking the signature. It is only
// used to size blacklist entries for tokens that were already verified.
func ExpiresAt(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("exp claim not present")
	}
	return exp.Time, nil
}
