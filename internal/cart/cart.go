package cart

import "time"

// Item is one cart line. Price is a snapshot taken when the line was first
// added and is never re-read from the catalog.
type Item struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Cart is the single active cart of a user.
type Cart struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Items     []Item    `json:"items" bson:"items"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// View is the API shape of a cart read: items plus the computed total.
// A user without a cart reads as an empty view.
type View struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

func total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
