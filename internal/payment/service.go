package payment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
	"github.com/nuttawut-l/storefront-backend/internal/order"
)

// Service creates checkout sessions and mirrors the gateway's view of them
// into local transaction records.
type Service struct {
	repo    Repository
	gateway Gateway
	orders  *order.Service
}

func NewService(repo Repository, gateway Gateway, orders *order.Service) *Service {
	return &Service{repo: repo, gateway: gateway, orders: orders}
}

// CreateSession opens a hosted checkout page for the given amount and
// records a pending transaction keyed by the returned session id. Gateway
// failures are returned untouched so the handler can pass the message
// through.
func (s *Service) CreateSession(ctx context.Context, ident auth.Identity, amount float64, originURL string) (Session, error) {
	origin := strings.TrimRight(originURL, "/")

	sess, err := s.gateway.CreateSession(ctx, SessionRequest{
		Amount:     amount,
		Currency:   "usd",
		SuccessURL: origin + "/order-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  origin + "/cart",
		Metadata: map[string]string{
			"user_id":    ident.ID,
			"user_email": ident.Email,
		},
	})
	if err != nil {
		return Session{}, err
	}

	err = s.repo.Insert(ctx, Transaction{
		ID:            uuid.NewString(),
		SessionID:     sess.ID,
		UserID:        ident.ID,
		UserEmail:     ident.Email,
		Amount:        amount,
		Currency:      "usd",
		PaymentStatus: StatusPending,
		Metadata:      map[string]string{"payment_method": "stripe"},
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// PollStatus asks the gateway for the session's current state. The first
// poll that sees a paid session marks the local transaction paid and
// advances the caller's first unpaid order; later polls are no-ops. The
// gateway payload is returned either way.
func (s *Service) PollStatus(ctx context.Context, ident auth.Identity, sessionID string) (SessionStatus, error) {
	status, err := s.gateway.GetStatus(ctx, sessionID)
	if err != nil {
		return SessionStatus{}, err
	}

	tx, err := s.repo.GetBySessionID(ctx, sessionID)
	if err == nil && tx.PaymentStatus != StatusPaid && status.PaymentStatus == StatusPaid {
		if err := s.repo.SetStatus(ctx, sessionID, StatusPaid); err != nil {
			return SessionStatus{}, err
		}
		if err := s.orders.AttachPayment(ctx, ident.ID, sessionID); err != nil {
			return SessionStatus{}, err
		}
	}

	return status, nil
}

// HandleWebhook verifies the gateway notification and mirrors a paid event
// into the transaction record. Order state is left to the poll path.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	evt, err := s.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}

	if evt.SessionID != "" && evt.PaymentStatus == StatusPaid {
		if err := s.repo.SetStatus(ctx, evt.SessionID, StatusPaid); err != nil && err != ErrNotFound {
			return err
		}
	}
	return nil
}
