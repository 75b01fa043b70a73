package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

func TestMemoryProductRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProductRepo()
	p := &catalog.Product{Name: "Sesame Seeds", Category: "seeds", KeyFeatures: []string{"hulled"}}
	id, err := r.Create(ctx, p)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, id, p.ID)

	got, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Sesame Seeds", got.Name)

	// callers cannot mutate stored records
	got.KeyFeatures[0] = "changed"
	again, err := r.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "hulled", again.KeyFeatures[0])

	name := "Black Sesame"
	featured := true
	updated, err := r.Update(ctx, id, catalog.ProductPatch{Name: &name, Featured: &featured})
	require.NoError(t, err)
	require.Equal(t, "Black Sesame", updated.Name)
	require.True(t, updated.Featured)
	require.Equal(t, "seeds", updated.Category)

	byCat, err := r.ListByCategory(ctx, "seeds")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	byCat, err = r.ListByCategory(ctx, "Seeds")
	require.NoError(t, err)
	require.Empty(t, byCat)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, id), ErrNotFound)
	_, err = r.Update(ctx, id, catalog.ProductPatch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductRepoKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryProductRepo()
	for _, n := range []string{"c", "a", "b"} {
		_, err := r.Create(ctx, &catalog.Product{Name: n})
		require.NoError(t, err)
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, []string{list[0].Name, list[1].Name, list[2].Name})
}

func TestMemoryCategoryRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryCategoryRepo()
	for _, n := range []string{"Sugar", "Edible Oil", "Rice"} {
		_, err := r.Create(ctx, &catalog.Category{Name: n})
		require.NoError(t, err)
	}
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Edible Oil", list[0].Name)
	require.Equal(t, "Rice", list[1].Name)
	require.Equal(t, "Sugar", list[2].Name)

	found, err := r.FindByName(ctx, "Rice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	found, err = r.FindByName(ctx, "rice")
	require.NoError(t, err)
	require.Empty(t, found)

	count := 12
	c, err := r.Update(ctx, list[1].ID, catalog.CategoryPatch{ProductCount: &count})
	require.NoError(t, err)
	require.Equal(t, 12, c.ProductCount)

	require.NoError(t, r.Delete(ctx, c.ID))
	_, err = r.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFAQRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryFAQRepo()
	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, r.InsertMany(ctx, []*catalog.FAQ{{Question: "q1", Answer: "a1"}, {Question: "q2", Answer: "a2"}}))
	id, err := r.Insert(ctx, &catalog.FAQ{Question: "q3", Answer: "a3"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "q1", list[0].Question)
	require.Equal(t, id, list[2].ID)
	require.False(t, list[0].CreatedAt.IsZero())
}
