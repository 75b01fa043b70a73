package repository

import (
	"context"
	"errors"

	"github.com/meridiantrade/catalog-services/internal/contact"
)

var ErrNotFound = errors.New("not found")

// Repository stores contact messages. List returns newest first.
type Repository interface {
	Create(ctx context.Context, m *contact.Message) (string, error)
	MarkEmailed(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]*contact.Message, error)
}
