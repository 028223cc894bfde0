package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
	"github.com/nuttawut-l/storefront-backend/internal/cart"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrForbidden = errors.New("access denied")
)

// Service converts carts into orders and guards order reads by ownership.
type Service struct {
	repo  Repository
	carts *cart.Service
}

func NewService(repo Repository, carts *cart.Service) *Service {
	return &Service{repo: repo, carts: carts}
}

// Create snapshots the user's current cart into a pending order and then
// deletes the cart. There is no transactional rollback: once the order is
// inserted it stays even if the cart removal fails.
func (s *Service) Create(ctx context.Context, ident auth.Identity, paymentMethod string) (Order, error) {
	view, err := s.carts.Get(ctx, ident.ID)
	if err != nil {
		return Order{}, err
	}
	if len(view.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	o := Order{
		ID:            uuid.NewString(),
		UserID:        ident.ID,
		UserEmail:     ident.Email,
		Items:         view.Items,
		Total:         view.Total,
		Status:        StatusPending,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, o); err != nil {
		return Order{}, err
	}

	_ = s.carts.Clear(ctx, ident.ID)
	return o, nil
}

// List returns every order for admins and only the caller's own otherwise.
func (s *Service) List(ctx context.Context, ident auth.Identity) ([]Order, error) {
	if ident.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, ident.ID)
}

func (s *Service) Get(ctx context.Context, id string, ident auth.Identity) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if !ident.IsAdmin() && o.UserID != ident.ID {
		return Order{}, ErrForbidden
	}
	return o, nil
}

// SetStatus accepts any status string; the lifecycle constants are not
// enforced here.
func (s *Service) SetStatus(ctx context.Context, id, status string) error {
	return s.repo.SetStatus(ctx, id, status)
}

// AttachPayment marks the user's first unpaid order as processing under the
// given session. The selection is deliberately not scoped to a session or
// amount: with several unpaid orders the oldest match wins, which can pick
// an order other than the one actually paid for.
func (s *Service) AttachPayment(ctx context.Context, userID, sessionID string) error {
	return s.repo.AttachPayment(ctx, userID, sessionID)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Revenue sums the totals of every order ever placed, whatever its status.
func (s *Service) Revenue(ctx context.Context) (float64, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, o := range orders {
		sum += o.Total
	}
	return sum, nil
}
