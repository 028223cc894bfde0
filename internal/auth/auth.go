package auth

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Identity is the authenticated caller resolved once per request and passed
// down to handlers through the request context.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
