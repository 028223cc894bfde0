package cart

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("cart not found")

type Repository interface {
	GetByUser(ctx context.Context, userID string) (Cart, error)
	Insert(ctx context.Context, c Cart) error
	SetItems(ctx context.Context, userID string, items []Item, updatedAt time.Time) error
	// DeleteByUser is idempotent; deleting a missing cart is not an error.
	DeleteByUser(ctx context.Context, userID string) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]Cart)}
}

func (r *InMemoryRepository) GetByUser(ctx context.Context, userID string) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrNotFound
	}
	out := c
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	return out, nil
}

func (r *InMemoryRepository) Insert(ctx context.Context, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[c.UserID] = c
	return nil
}

func (r *InMemoryRepository) SetItems(ctx context.Context, userID string, items []Item, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return ErrNotFound
	}
	c.Items = items
	c.UpdatedAt = updatedAt
	r.carts[userID] = c
	return nil
}

func (r *InMemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
	return nil
}
