package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBlacklist_AddAndExpire(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	bl := NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	ctx := context.Background()
	token := "access-token-1"
	require.NoError(t, bl.Add(ctx, token, 2*time.Second))

	ok, err := bl.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)

	// the raw token never appears in a key
	for _, k := range m.Keys() {
		require.NotContains(t, k, token)
	}

	m.FastForward(3 * time.Second)

	ok, err = bl.IsBlacklisted(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBlacklist_IgnoresExpiredTTL(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	bl := NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	require.NoError(t, bl.Add(context.Background(), "old", -time.Second))
	require.Empty(t, m.Keys())
}

func TestBlacklist_NoClientNoop(t *testing.T) {
	ctx := context.Background()
	for _, bl := range []*Blacklist{nil, NewBlacklist(nil)} {
		require.False(t, bl.Enabled())
		require.NoError(t, bl.Add(ctx, "tok", time.Second))
		ok, err := bl.IsBlacklisted(ctx, "tok")
		require.NoError(t, err)
		require.False(t, ok)
	}
}
