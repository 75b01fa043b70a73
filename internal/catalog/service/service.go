package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/internal/catalog/repository"
	"github.com/meridiantrade/catalog-services/internal/sitepaths"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

// DefaultMaxResults caps product lists returned to the chat helper.
const DefaultMaxResults = 5

var (
	ErrNotFound = errors.New("not found")
)

// Service reads and edits the product and category collections.
//
// Read operations come in two flavours: an error-returning core (Search,
// ByCategory, Categories, CategoryByName) and a benign adapter
// (SearchProducts, GetProductsByCategory, GetAllCategories,
// GetCategoryByName) that logs store failures and returns an empty result.
type Service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewService(p repository.ProductRepository, c repository.CategoryRepository) *Service {
	return &Service{products: p, categories: c}
}

// NewMemoryService returns a Service backed by in-memory collections.
func NewMemoryService() *Service {
	return NewService(repository.NewMemoryProductRepo(), repository.NewMemoryCategoryRepo())
}

func (s *Service) allProducts(ctx context.Context, op string) ([]*catalog.Product, error) {
	if s == nil || s.products == nil {
		return nil, catalog.Unavailable(op)
	}
	list, err := s.products.List(ctx)
	if err != nil {
		return nil, catalog.QueryFailed(op, err)
	}
	return list, nil
}

// Search matches term case-insensitively against name, description and
// category. Name matches come first; order is otherwise stable. max <= 0
// means no limit.
func (s *Service) Search(ctx context.Context, term string, max int) ([]*catalog.Product, error) {
	list, err := s.allProducts(ctx, "search products")
	if err != nil {
		return nil, err
	}
	t := strings.ToLower(term)
	var byName, other []*catalog.Product
	for _, p := range list {
		switch {
		case strings.Contains(strings.ToLower(p.Name), t):
			byName = append(byName, p)
		case strings.Contains(strings.ToLower(p.Description), t),
			strings.Contains(strings.ToLower(p.Category), t):
			other = append(other, p)
		}
	}
	return truncate(append(byName, other...), max), nil
}

// ByCategory returns products whose category equals name, falling back to a
// case-insensitive containment scan when there is no exact match.
func (s *Service) ByCategory(ctx context.Context, name string, max int) ([]*catalog.Product, error) {
	const op = "products by category"
	if s == nil || s.products == nil {
		return nil, catalog.Unavailable(op)
	}
	exact, err := s.products.ListByCategory(ctx, name)
	if err != nil {
		return nil, catalog.QueryFailed(op, err)
	}
	if len(exact) > 0 {
		return truncate(exact, max), nil
	}
	list, err := s.allProducts(ctx, op)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	out := []*catalog.Product{}
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Category), needle) {
			out = append(out, p)
		}
	}
	return truncate(out, max), nil
}

// Categories returns every category ordered by name.
func (s *Service) Categories(ctx context.Context) ([]*catalog.Category, error) {
	const op = "list categories"
	if s == nil || s.categories == nil {
		return nil, catalog.Unavailable(op)
	}
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, catalog.QueryFailed(op, err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// CategoryByName tries an exact name match, then a case-insensitive substring
// match. It returns nil without error when nothing matches.
func (s *Service) CategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	const op = "category by name"
	if s == nil || s.categories == nil {
		return nil, catalog.Unavailable(op)
	}
	exact, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, catalog.QueryFailed(op, err)
	}
	if len(exact) > 0 {
		return exact[0], nil
	}
	all, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c, nil
		}
	}
	return nil, nil
}

// CategoryBySlug resolves a URL slug produced by sitepaths.Slug.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*catalog.Category, error) {
	all, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if sitepaths.Slug(c.Name) == slug {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Service) SearchProducts(ctx context.Context, term string, max int) []*catalog.Product {
	list, err := s.Search(ctx, term, max)
	if err != nil {
		storeFailure("search_products", err)
		return []*catalog.Product{}
	}
	return list
}

func (s *Service) GetProductsByCategory(ctx context.Context, name string, max int) []*catalog.Product {
	list, err := s.ByCategory(ctx, name, max)
	if err != nil {
		storeFailure("products_by_category", err)
		return []*catalog.Product{}
	}
	return list
}

func (s *Service) GetAllCategories(ctx context.Context) []*catalog.Category {
	list, err := s.Categories(ctx)
	if err != nil {
		storeFailure("all_categories", err)
		return []*catalog.Category{}
	}
	return list
}

func (s *Service) GetCategoryByName(ctx context.Context, name string) *catalog.Category {
	c, err := s.CategoryByName(ctx, name)
	if err != nil {
		storeFailure("category_by_name", err)
		return nil
	}
	return c
}

func storeFailure(op string, err error) {
	metrics.StoreErrors.WithLabelValues(op).Inc()
	logger.Errorf("catalog %s: %v", op, err)
}

func truncate[T any](list []T, max int) []T {
	if list == nil {
		return []T{}
	}
	if max > 0 && len(list) > max {
		return list[:max]
	}
	return list
}

// ProductFilter narrows ListProducts for the public catalog API.
type ProductFilter struct {
	Query        string
	Category     string
	FeaturedOnly bool
}

// ListProducts returns products for the public catalog pages.
func (s *Service) ListProducts(ctx context.Context, f ProductFilter) ([]*catalog.Product, error) {
	var (
		list []*catalog.Product
		err  error
	)
	switch {
	case f.Query != "":
		list, err = s.Search(ctx, f.Query, 0)
	case f.Category != "":
		list, err = s.ByCategory(ctx, f.Category, 0)
	default:
		list, err = s.allProducts(ctx, "list products")
	}
	if err != nil {
		return nil, err
	}
	if f.Category != "" && f.Query != "" {
		list = keep(list, func(p *catalog.Product) bool {
			return strings.Contains(strings.ToLower(p.Category), strings.ToLower(f.Category))
		})
	}
	if f.FeaturedOnly {
		list = keep(list, func(p *catalog.Product) bool { return p.Featured })
	}
	return list, nil
}

func keep(list []*catalog.Product, ok func(*catalog.Product) bool) []*catalog.Product {
	out := []*catalog.Product{}
	for _, p := range list {
		if ok(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, err := s.products.Get(ctx, id)
	return p, mapErr("get product", err)
}

func validateProduct(p *catalog.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", catalog.ErrInvalid)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", catalog.ErrInvalid)
	}
	return nil
}

func (s *Service) CreateProduct(ctx context.Context, p *catalog.Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}
	id, err := s.products.Create(ctx, p)
	if err != nil {
		return "", catalog.QueryFailed("create product", err)
	}
	logger.Infof("product created: id=%s name=%q category=%q", id, p.Name, p.Category)
	return id, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", catalog.ErrInvalid)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", catalog.ErrInvalid)
	}
	p, err := s.products.Update(ctx, id, patch)
	return p, mapErr("update product", err)
}

func (s *Service) SetFeatured(ctx context.Context, id string, featured bool) (*catalog.Product, error) {
	return s.UpdateProduct(ctx, id, catalog.ProductPatch{Featured: &featured})
}

func (s *Service) SetInStock(ctx context.Context, id string, inStock bool) (*catalog.Product, error) {
	return s.UpdateProduct(ctx, id, catalog.ProductPatch{InStock: &inStock})
}

func (s *Service) SetProductImage(ctx context.Context, id, url string) (*catalog.Product, error) {
	return s.UpdateProduct(ctx, id, catalog.ProductPatch{ImageURL: &url})
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return mapErr("delete product", s.products.Delete(ctx, id))
}

func (s *Service) CreateCategory(ctx context.Context, c *catalog.Category) (string, error) {
	if strings.TrimSpace(c.Name) == "" {
		return "", fmt.Errorf("%w: category name is required", catalog.ErrInvalid)
	}
	if c.ProductCount < 0 {
		return "", fmt.Errorf("%w: productCount must be non-negative", catalog.ErrInvalid)
	}
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		return "", catalog.QueryFailed("create category", err)
	}
	return id, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch catalog.CategoryPatch) (*catalog.Category, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", catalog.ErrInvalid)
	}
	if patch.ProductCount != nil && *patch.ProductCount < 0 {
		return nil, fmt.Errorf("%w: productCount must be non-negative", catalog.ErrInvalid)
	}
	c, err := s.categories.Update(ctx, id, patch)
	return c, mapErr("update category", err)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return mapErr("delete category", s.categories.Delete(ctx, id))
}

func mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return catalog.QueryFailed(op, err)
	}
}

// StaticPaths lists the routes a static export of the site must render.
func (s *Service) StaticPaths(ctx context.Context) ([]string, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.allProducts(ctx, "static paths")
	if err != nil {
		return nil, err
	}
	return sitepaths.Generate(cats, products), nil
}
