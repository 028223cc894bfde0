package order

import (
	"time"

	"github.com/nuttawut-l/storefront-backend/internal/cart"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentMethodStripe = "stripe"
	PaymentMethodPaypal = "paypal"
)

// Order is an immutable snapshot of a cart at checkout time. Items and Total
// never change after creation; only Status and PaymentID advance.
type Order struct {
	ID            string      `json:"id" bson:"id"`
	UserID        string      `json:"user_id" bson:"user_id"`
	UserEmail     string      `json:"user_email" bson:"user_email"`
	Items         []cart.Item `json:"items" bson:"items"`
	Total         float64     `json:"total" bson:"total"`
	Status        string      `json:"status" bson:"status"`
	PaymentMethod string      `json:"payment_method" bson:"payment_method"`
	PaymentID     *string     `json:"payment_id" bson:"payment_id"`
	CreatedAt     time.Time   `json:"created_at" bson:"created_at"`
}
