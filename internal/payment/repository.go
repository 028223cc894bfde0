package payment

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("transaction not found")

type Repository interface {
	Insert(ctx context.Context, t Transaction) error
	GetBySessionID(ctx context.Context, sessionID string) (Transaction, error)
	SetStatus(ctx context.Context, sessionID, status string) error
}

type InMemoryRepository struct {
	mu           sync.RWMutex
	transactions map[string]Transaction
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{transactions: make(map[string]Transaction)}
}

func (r *InMemoryRepository) Insert(ctx context.Context, t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transactions[t.SessionID] = t
	return nil
}

func (r *InMemoryRepository) GetBySessionID(ctx context.Context, sessionID string) (Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transactions[sessionID]
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return t, nil
}

func (r *InMemoryRepository) SetStatus(ctx context.Context, sessionID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.transactions[sessionID]
	if !ok {
		return ErrNotFound
	}
	t.PaymentStatus = status
	r.transactions[sessionID] = t
	return nil
}
