package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateSession(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "local:admin", "admin", time.Hour)
	require.NoError(t, err)
	require.Len(t, r, 64)

	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "local:admin", sess.Subject)

	require.NoError(t, svc.DeleteRefresh(ctx, r))
	sess, err = svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestValidateRefresh_Expired(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "local:admin", "admin", time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().UTC().Add(2 * time.Minute) }
	sess, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, sess)

	stored, err := repo.GetByRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, stored, "expired session should be cleaned up")
}

func TestRotate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	r, err := svc.CreateSession(ctx, "local:admin", "admin", time.Hour)
	require.NoError(t, err)

	sess, next, err := svc.Rotate(ctx, r, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.NotEqual(t, r, next)

	old, err := svc.ValidateRefresh(ctx, r)
	require.NoError(t, err)
	require.Nil(t, old)

	fresh, err := svc.ValidateRefresh(ctx, next)
	require.NoError(t, err)
	require.Equal(t, "admin", fresh.Username)

	sess, next, err = svc.Rotate(ctx, "unknown", time.Hour)
	require.NoError(t, err)
	require.Nil(t, sess)
	require.Empty(t, next)
}
