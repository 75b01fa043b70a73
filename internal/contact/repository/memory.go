package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridiantrade/catalog-services/internal/contact"
)

// MemoryRepo keeps messages in process.
type MemoryRepo struct {
	mu   sync.RWMutex
	msgs []*contact.Message
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, m *contact.Message) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	cp := *m
	r.msgs = append(r.msgs, &cp)
	return m.ID, nil
}

func (r *MemoryRepo) MarkEmailed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.msgs {
		if m.ID == id {
			m.Emailed = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context, limit int) ([]*contact.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*contact.Message{}
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		cp := *r.msgs[i]
		out = append(out, &cp)
	}
	return out, nil
}
