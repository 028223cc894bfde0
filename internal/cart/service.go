package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates cart mutations. Each operation is an independent
// read-modify-write on the whole items array; concurrent writes from the
// same user are last-write-wins.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the user's cart as a view. A missing cart reads as empty
// rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if err == ErrNotFound {
		return View{Items: []Item{}, Total: 0}, nil
	}
	if err != nil {
		return View{}, err
	}

	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return View{Items: items, Total: total(items)}, nil
}

// AddItem lazily creates the cart on first use. Re-adding a product merges
// into the existing line by incrementing its quantity; the line keeps the
// price snapshot from the first add.
func (s *Service) AddItem(ctx context.Context, userID string, item Item) error {
	now := time.Now().UTC()

	c, err := s.repo.GetByUser(ctx, userID)
	if err == ErrNotFound {
		return s.repo.Insert(ctx, Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []Item{item},
			UpdatedAt: now,
		})
	}
	if err != nil {
		return err
	}

	items := c.Items
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	return s.repo.SetItems(ctx, userID, items, now)
}

// UpdateItem sets a line's quantity; zero or less removes the line. A
// product not present in the cart is a silent no-op. Without a cart it
// returns ErrNotFound.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, quantity int) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	items := c.Items
	for i := range items {
		if items[i].ProductID == productID {
			if quantity <= 0 {
				items = append(items[:i], items[i+1:]...)
			} else {
				items[i].Quantity = quantity
			}
			break
		}
	}

	return s.repo.SetItems(ctx, userID, items, time.Now().UTC())
}

// RemoveItem drops a line unconditionally; removing a line that does not
// exist is not an error. Without a cart it returns ErrNotFound.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}

	return s.repo.SetItems(ctx, userID, items, time.Now().UTC())
}

// Clear deletes the user's cart document entirely.
func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.DeleteByUser(ctx, userID)
}
