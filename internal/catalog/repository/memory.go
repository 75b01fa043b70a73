package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridiantrade/catalog-services/internal/catalog"
)

// ordered keeps records in insertion order, which stands in for the natural
// iteration order of a document collection.
type ordered[T any] struct {
	mu    sync.RWMutex
	order []string
	store map[string]T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{store: make(map[string]T)}
}

func (o *ordered[T]) put(id string, v T) {
	if _, ok := o.store[id]; !ok {
		o.order = append(o.order, id)
	}
	o.store[id] = v
}

func (o *ordered[T]) remove(id string) bool {
	if _, ok := o.store[id]; !ok {
		return false
	}
	delete(o.store, id)
	for i, k := range o.order {
		if k == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[T]) values() []T {
	out := make([]T, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.store[id])
	}
	return out
}

// MemoryFAQRepo is an in-memory FAQ collection used when MongoDB is not configured and in tests.
type MemoryFAQRepo struct {
	data *ordered[*catalog.FAQ]
}

func NewMemoryFAQRepo() *MemoryFAQRepo {
	return &MemoryFAQRepo{data: newOrdered[*catalog.FAQ]()}
}

func (m *MemoryFAQRepo) Count(ctx context.Context) (int64, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	return int64(len(m.data.order)), nil
}

func (m *MemoryFAQRepo) Insert(ctx context.Context, f *catalog.FAQ) (string, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	return m.insertLocked(f), nil
}

func (m *MemoryFAQRepo) InsertMany(ctx context.Context, fs []*catalog.FAQ) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	for _, f := range fs {
		m.insertLocked(f)
	}
	return nil
}

func (m *MemoryFAQRepo) insertLocked(f *catalog.FAQ) string {
	c := f.Clone()
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	m.data.put(c.ID, c)
	f.ID = c.ID
	return c.ID
}

func (m *MemoryFAQRepo) List(ctx context.Context) ([]*catalog.FAQ, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	vals := m.data.values()
	out := make([]*catalog.FAQ, len(vals))
	for i, f := range vals {
		out[i] = f.Clone()
	}
	return out, nil
}

// MemoryProductRepo is an in-memory products collection.
type MemoryProductRepo struct {
	data *ordered[*catalog.Product]
}

func NewMemoryProductRepo() *MemoryProductRepo {
	return &MemoryProductRepo{data: newOrdered[*catalog.Product]()}
}

func (m *MemoryProductRepo) List(ctx context.Context) ([]*catalog.Product, error) {
	return m.filter(func(*catalog.Product) bool { return true }), nil
}

func (m *MemoryProductRepo) ListByCategory(ctx context.Context, name string) ([]*catalog.Product, error) {
	return m.filter(func(p *catalog.Product) bool { return p.Category == name }), nil
}

func (m *MemoryProductRepo) filter(keep func(*catalog.Product) bool) []*catalog.Product {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	out := []*catalog.Product{}
	for _, p := range m.data.values() {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (m *MemoryProductRepo) Get(ctx context.Context, id string) (*catalog.Product, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	if p, ok := m.data.store[id]; ok {
		return p.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryProductRepo) Create(ctx context.Context, p *catalog.Product) (string, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	c := p.Clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	m.data.put(c.ID, c)
	p.ID, p.CreatedAt, p.UpdatedAt = c.ID, c.CreatedAt, c.UpdatedAt
	return c.ID, nil
}

func (m *MemoryProductRepo) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*catalog.Product, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	p, ok := m.data.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	return p.Clone(), nil
}

func (m *MemoryProductRepo) Delete(ctx context.Context, id string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if !m.data.remove(id) {
		return ErrNotFound
	}
	return nil
}

// MemoryCategoryRepo is an in-memory categories collection.
type MemoryCategoryRepo struct {
	data *ordered[*catalog.Category]
}

func NewMemoryCategoryRepo() *MemoryCategoryRepo {
	return &MemoryCategoryRepo{data: newOrdered[*catalog.Category]()}
}

func (m *MemoryCategoryRepo) List(ctx context.Context) ([]*catalog.Category, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	out := []*catalog.Category{}
	for _, c := range m.data.values() {
		cc := *c
		out = append(out, &cc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryCategoryRepo) FindByName(ctx context.Context, name string) ([]*catalog.Category, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	out := []*catalog.Category{}
	for _, c := range m.data.values() {
		if c.Name == name {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

func (m *MemoryCategoryRepo) Get(ctx context.Context, id string) (*catalog.Category, error) {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	if c, ok := m.data.store[id]; ok {
		cc := *c
		return &cc, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryCategoryRepo) Create(ctx context.Context, c *catalog.Category) (string, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	cc := *c
	if cc.ID == "" {
		cc.ID = uuid.NewString()
	}
	m.data.put(cc.ID, &cc)
	c.ID = cc.ID
	return cc.ID, nil
}

func (m *MemoryCategoryRepo) Update(ctx context.Context, id string, patch catalog.CategoryPatch) (*catalog.Category, error) {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	c, ok := m.data.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	patch.Apply(c)
	cc := *c
	return &cc, nil
}

func (m *MemoryCategoryRepo) Delete(ctx context.Context, id string) error {
	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if !m.data.remove(id) {
		return ErrNotFound
	}
	return nil
}
