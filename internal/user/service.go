package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a customer account. The plaintext password is hashed and
// discarded; a duplicate email yields ErrEmailExists.
func (s *Service) Register(ctx context.Context, email, password string) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         auth.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate returns ErrInvalidCredentials for a missing account or a hash
// mismatch; callers cannot tell the two apart.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureAdmin seeds the demo admin account when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if err != ErrNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(ctx, User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         auth.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
}
