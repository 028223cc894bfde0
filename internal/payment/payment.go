package payment

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFailed  = "failed"
	StatusExpired = "expired"
)

// Transaction mirrors a gateway checkout session locally. SessionID is the
// join key to the order that was paid through it.
type Transaction struct {
	ID            string            `json:"id" bson:"id"`
	SessionID     string            `json:"session_id" bson:"session_id"`
	UserID        string            `json:"user_id" bson:"user_id"`
	UserEmail     string            `json:"user_email" bson:"user_email"`
	Amount        float64           `json:"amount" bson:"amount"`
	Currency      string            `json:"currency" bson:"currency"`
	PaymentStatus string            `json:"payment_status" bson:"payment_status"`
	Metadata      map[string]string `json:"metadata" bson:"metadata"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
}
