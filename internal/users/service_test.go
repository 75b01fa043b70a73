package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridiantrade/catalog-services/internal/config"
	"github.com/meridiantrade/catalog-services/internal/models"
)

func TestAuthenticate_PlainPassword(t *testing.T) {
	svc := NewService(NewMemoryRepository(), config.AdminConfig{Username: "admin", Password: "s3cret"})
	ctx := context.Background()

	a, err := svc.Authenticate(ctx, "admin", "s3cret")
	require.NoError(t, err)
	require.Equal(t, "local:admin", a.Sub)
	require.Equal(t, models.SourceLocal, a.Source)
	require.False(t, a.LastLoginAt.IsZero())

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "root", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.GetBySub(ctx, "local:admin")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestAuthenticate_BcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewService(NewMemoryRepository(), config.AdminConfig{Username: "admin", Password: string(hash)})

	_, err = svc.Authenticate(context.Background(), "admin", "hunter2")
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), "admin", string(hash))
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_Disabled(t *testing.T) {
	svc := NewService(NewMemoryRepository(), config.AdminConfig{Username: "admin"})
	_, err := svc.Authenticate(context.Background(), "admin", "")
	require.ErrorIs(t, err, ErrLoginDisabled)
}

func TestUpsertFromClaims(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, config.AdminConfig{})
	ctx := context.Background()

	a, err := svc.UpsertFromClaims(ctx, map[string]interface{}{
		"sub":                "kc-123",
		"email":              "ops@meridiantrade.example",
		"name":               "Ops User",
		"preferred_username": "ops",
	})
	require.NoError(t, err)
	require.Equal(t, "ops", a.Username)
	require.Equal(t, models.SourceOIDC, a.Source)
	require.NotEmpty(t, a.ID)

	again, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"sub": "kc-123", "email": "ops@meridiantrade.example"})
	require.NoError(t, err)
	require.Equal(t, a.ID, again.ID)
	require.Equal(t, a.CreatedAt, again.CreatedAt)
	require.Equal(t, "ops@meridiantrade.example", again.Username)

	none, err := svc.UpsertFromClaims(ctx, map[string]interface{}{"email": "y@e.com"})
	require.NoError(t, err)
	require.Nil(t, none)
}
