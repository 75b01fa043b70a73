package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/catalog/repository"
)

type brokenProducts struct{ repository.ProductRepository }

func (brokenProducts) List(ctx context.Context) ([]*catalog.Product, error) {
	return nil, errors.New("connection reset")
}
func (brokenProducts) ListByCategory(ctx context.Context, name string) ([]*catalog.Product, error) {
	return nil, errors.New("connection reset")
}

type brokenCategories struct{ repository.CategoryRepository }

func (brokenCategories) List(ctx context.Context) ([]*catalog.Category, error) {
	return nil, errors.New("connection reset")
}
func (brokenCategories) FindByName(ctx context.Context, name string) ([]*catalog.Category, error) {
	return nil, errors.New("connection reset")
}

func mustProduct(t *testing.T, s *Service, p *catalog.Product) string {
	t.Helper()
	id, err := s.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	return id
}

func TestSearch_NameMatchesFirstAndCapped(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()
	for i := 0; i < 4; i++ {
		mustProduct(t, s, &catalog.Product{Name: fmt.Sprintf("Grade %d", i), Category: "Rice"})
	}
	for i := 0; i < 6; i++ {
		mustProduct(t, s, &catalog.Product{Name: fmt.Sprintf("Basmati Rice %d", i)})
	}
	mustProduct(t, s, &catalog.Product{Name: "Cane Sugar"})

	list := s.SearchProducts(ctx, "RICE", DefaultMaxResults)
	require.Len(t, list, 5)
	for i, p := range list {
		assert.Equal(t, fmt.Sprintf("Basmati Rice %d", i), p.Name)
	}

	all, err := s.Search(ctx, "rice", 0)
	require.NoError(t, err)
	require.Len(t, all, 10)
	assert.Equal(t, "Basmati Rice 5", all[5].Name)
	assert.Equal(t, "Grade 0", all[6].Name)
}

func TestSearch_DescriptionAndCategory(t *testing.T) {
	s := NewMemoryService()
	mustProduct(t, s, &catalog.Product{Name: "Liquid Bromine", Description: "99.9% purity"})
	mustProduct(t, s, &catalog.Product{Name: "Rock Salt", Category: "Minerals"})

	require.Len(t, s.SearchProducts(context.Background(), "purity", 5), 1)
	require.Len(t, s.SearchProducts(context.Background(), "mineral", 5), 1)
	require.Empty(t, s.SearchProducts(context.Background(), "cashew", 5))
}

func TestByCategory_ExactThenContains(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()
	mustProduct(t, s, &catalog.Product{Name: "Sunflower Oil", Category: "Edible Oil"})
	mustProduct(t, s, &catalog.Product{Name: "Palm Oil", Category: "oil"})

	exact := s.GetProductsByCategory(ctx, "oil", 5)
	require.Len(t, exact, 1)
	assert.Equal(t, "Palm Oil", exact[0].Name)

	loose := s.GetProductsByCategory(ctx, "OIL", 5)
	require.Len(t, loose, 2)

	require.Empty(t, s.GetProductsByCategory(ctx, "bromine", 5))
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()
	for _, n := range []string{"Sugar", "Basmati Rice", "Non-Basmati Rice"} {
		_, err := s.CreateCategory(ctx, &catalog.Category{Name: n})
		require.NoError(t, err)
	}

	list := s.GetAllCategories(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, "Basmati Rice", list[0].Name)

	c := s.GetCategoryByName(ctx, "Non-Basmati Rice")
	require.NotNil(t, c)
	assert.Equal(t, "Non-Basmati Rice", c.Name)

	// substring fallback returns the first match by name order
	c = s.GetCategoryByName(ctx, "rice")
	require.NotNil(t, c)
	assert.Equal(t, "Basmati Rice", c.Name)

	require.Nil(t, s.GetCategoryByName(ctx, "pulses"))

	c, err := s.CategoryBySlug(ctx, "non-basmati-rice")
	require.NoError(t, err)
	assert.Equal(t, "Non-Basmati Rice", c.Name)
	_, err = s.CategoryBySlug(ctx, "pulses")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdaptersSwallowStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewService(brokenProducts{}, brokenCategories{})

	_, err := s.Search(ctx, "rice", 5)
	require.ErrorIs(t, err, catalog.ErrStoreQuery)
	_, err = s.Categories(ctx)
	require.ErrorIs(t, err, catalog.ErrStoreQuery)

	require.NotNil(t, s.SearchProducts(ctx, "rice", 5))
	require.Empty(t, s.SearchProducts(ctx, "rice", 5))
	require.Empty(t, s.GetProductsByCategory(ctx, "rice", 5))
	require.Empty(t, s.GetAllCategories(ctx))
	require.Nil(t, s.GetCategoryByName(ctx, "rice"))

	var nilSvc *Service
	_, err = nilSvc.Search(ctx, "rice", 5)
	require.ErrorIs(t, err, catalog.ErrStoreUnavailable)
	require.Empty(t, nilSvc.GetAllCategories(ctx))
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()
	mustProduct(t, s, &catalog.Product{Name: "1121 Basmati", Category: "Rice", Featured: true})
	mustProduct(t, s, &catalog.Product{Name: "Sona Masoori", Category: "Rice"})
	mustProduct(t, s, &catalog.Product{Name: "Basmati Seeds", Category: "Seeds"})

	all, err := s.ListProducts(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	featured, err := s.ListProducts(ctx, ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)

	both, err := s.ListProducts(ctx, ProductFilter{Query: "basmati", Category: "rice"})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "1121 Basmati", both[0].Name)
}

func TestAdminValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()

	_, err := s.CreateProduct(ctx, &catalog.Product{Name: "  "})
	require.ErrorIs(t, err, catalog.ErrInvalid)
	neg := -1.0
	_, err = s.CreateProduct(ctx, &catalog.Product{Name: "x", Price: &neg})
	require.ErrorIs(t, err, catalog.ErrInvalid)
	_, err = s.CreateCategory(ctx, &catalog.Category{})
	require.ErrorIs(t, err, catalog.ErrInvalid)

	id := mustProduct(t, s, &catalog.Product{Name: "Raw Sugar"})
	_, err = s.UpdateProduct(ctx, id, catalog.ProductPatch{Price: &neg})
	require.ErrorIs(t, err, catalog.ErrInvalid)

	p, err := s.SetFeatured(ctx, id, true)
	require.NoError(t, err)
	require.True(t, p.Featured)
	p, err = s.SetInStock(ctx, id, false)
	require.NoError(t, err)
	require.NotNil(t, p.InStock)
	require.False(t, *p.InStock)
	p, err = s.SetProductImage(ctx, id, "http://img/1.jpg")
	require.NoError(t, err)
	require.Equal(t, "http://img/1.jpg", p.ImageURL)

	require.NoError(t, s.DeleteProduct(ctx, id))
	require.ErrorIs(t, s.DeleteProduct(ctx, id), ErrNotFound)
	_, err = s.GetProduct(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateCategory(ctx, "missing", catalog.CategoryPatch{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStaticPaths(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryService()
	_, err := s.CreateCategory(ctx, &catalog.Category{Name: "Special Products"})
	require.NoError(t, err)
	mustProduct(t, s, &catalog.Product{Name: "Liquid Bromine 99.8%", Category: "special"})

	paths, err := s.StaticPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/",
		"/contact",
		"/products",
		"/products/special-products",
		"/products/special-products/liquid-bromine-99-8",
	}, paths)

	_, err = NewService(brokenProducts{}, repository.NewMemoryCategoryRepo()).StaticPaths(ctx)
	assert.ErrorIs(t, err, catalog.ErrStoreQuery)
}
