package payment

import "context"

// SessionRequest describes a hosted checkout page to create.
type SessionRequest struct {
	Amount     float64
	Currency   string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the gateway's reference to a hosted checkout page.
type Session struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// SessionStatus is the gateway's view of a session, returned verbatim to
// polling clients. PaymentStatus is normalized to the local status values.
type SessionStatus struct {
	SessionID     string `json:"session_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// WebhookEvent is a verified gateway notification. A zero SessionID means
// the event type is not one we track.
type WebhookEvent struct {
	SessionID     string
	PaymentStatus string
}

// Gateway is the external payment processor. The Stripe implementation is
// the production one; tests substitute a fake.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
	GetStatus(ctx context.Context, sessionID string) (SessionStatus, error)
	VerifyWebhook(payload []byte, signature string) (WebhookEvent, error)
}
