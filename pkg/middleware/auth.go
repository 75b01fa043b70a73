package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Token is a verified token that can expose its claims.
type Token interface {
	Claims(v interface{}) error
}

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Blacklist reports revoked access tokens.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// ClaimsMap is a Token over already-decoded claims.
type ClaimsMap map[string]interface{}

func (m ClaimsMap) Claims(v interface{}) error {
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Context keys set by AuthMiddleware.
const (
	ClaimsKey      = "claims"
	AccessTokenKey = "accessToken"
)

var ErrNoVerifier = errors.New("no token verifier configured")

type chain []Verifier

// Chain tries each verifier in order and returns the first success. Nil
// verifiers are skipped.
func Chain(verifiers ...Verifier) Verifier {
	out := chain{}
	for _, v := range verifiers {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func (c chain) Verify(ctx context.Context, raw string) (Token, error) {
	err := ErrNoVerifier
	for _, v := range c {
		tok, verr := v.Verify(ctx, raw)
		if verr == nil {
			return tok, nil
		}
		err = verr
	}
	return nil, err
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware verifies bearer tokens with ver and rejects tokens found in
// bl. bl may be nil.
func AuthMiddleware(ver Verifier, bl Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		token, ok := BearerToken(auth)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		if bl != nil {
			revoked, err := bl.IsBlacklisted(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "token revocation check failed"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(AccessTokenKey, token)
		c.Next()
	}
}

// Claims returns the claims stored by AuthMiddleware.
func Claims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]interface{})
	return m
}
