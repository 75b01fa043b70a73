package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/contact"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	first := &contact.Message{Name: "A", Email: "a@x.io", Message: "one"}
	id, err := r.Create(ctx, first)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.False(t, first.CreatedAt.IsZero())

	_, err = r.Create(ctx, &contact.Message{Name: "B", Email: "b@x.io", Message: "two"})
	require.NoError(t, err)

	require.NoError(t, r.MarkEmailed(ctx, id))
	require.ErrorIs(t, r.MarkEmailed(ctx, "missing"), ErrNotFound)

	list, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "B", list[0].Name)
	require.True(t, list[1].Emailed)

	list, err = r.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
}
