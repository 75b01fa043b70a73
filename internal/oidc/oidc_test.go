package oidc

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/pkg/middleware"
)

func unsigned(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return tok
}

func TestInsecureVerifier_RequiresRole(t *testing.T) {
	v := NewInsecureVerifier("catalog-admin")

	ok := unsigned(t, jwt.MapClaims{
		"sub":          "kc-1",
		"realm_access": map[string]interface{}{"roles": []string{"offline_access", "catalog-admin"}},
	})
	tok, err := v.Verify(context.Background(), ok)
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "kc-1", claims["sub"])

	missing := unsigned(t, jwt.MapClaims{"sub": "kc-2"})
	_, err = v.Verify(context.Background(), missing)
	require.ErrorContains(t, err, "catalog-admin")
}

func TestInsecureVerifier_NoRole(t *testing.T) {
	_, err := NewInsecureVerifier("").Verify(context.Background(), unsigned(t, jwt.MapClaims{"sub": "kc-3"}))
	require.NoError(t, err)

	_, err = NewInsecureVerifier("").Verify(context.Background(), "garbage")
	require.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	tok := middleware.ClaimsMap{"realm_access": map[string]interface{}{"roles": []interface{}{"a", "b"}}}
	require.NoError(t, requireRole(tok, "b"))
	require.Error(t, requireRole(tok, "c"))
	require.NoError(t, requireRole(middleware.ClaimsMap{}, ""))
}
