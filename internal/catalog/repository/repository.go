package repository

import (
	"context"
	"errors"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

var (
	ErrNotFound = errors.New("record not found")
)

// FAQRepository persists the faq collection. List preserves store order.
type FAQRepository interface {
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, f *catalog.FAQ) (string, error)
	InsertMany(ctx context.Context, fs []*catalog.FAQ) error
	List(ctx context.Context) ([]*catalog.FAQ, error)
}

// ProductRepository persists the products collection.
type ProductRepository interface {
	List(ctx context.Context) ([]*catalog.Product, error)
	// ListByCategory returns products whose category equals name exactly.
	ListByCategory(ctx context.Context, name string) ([]*catalog.Product, error)
	Get(ctx context.Context, id string) (*catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) (string, error)
	Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error)
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists the categories collection.
type CategoryRepository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*catalog.Category, error)
	// FindByName returns categories whose name equals name exactly.
	FindByName(ctx context.Context, name string) ([]*catalog.Category, error)
	Get(ctx context.Context, id string) (*catalog.Category, error)
	Create(ctx context.Context, c *catalog.Category) (string, error)
	Update(ctx context.Context, id string, patch catalog.CategoryPatch) (*catalog.Category, error)
	Delete(ctx context.Context, id string) error
}
