package order

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Insert(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id string) (Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	SetStatus(ctx context.Context, id, status string) error
	// AttachPayment advances the first order of the user that has no
	// payment id yet to "processing" and records the session id. Matching
	// no order is not an error.
	AttachPayment(ctx context.Context, userID, sessionID string) error
	Count(ctx context.Context) (int64, error)
}

type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) Insert(ctx context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, o)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) AttachPayment(ctx context.Context, userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].UserID == userID && r.orders[i].PaymentID == nil {
			sid := sessionID
			r.orders[i].PaymentID = &sid
			r.orders[i].Status = StatusProcessing
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}
