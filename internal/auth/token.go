package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Issuer signs bearer tokens for authenticated users.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Sign returns an HS256 token carrying the user id as subject plus email and
// role claims. Tokens expire after the configured lifetime (7 days by
// default).
func (i *Issuer) Sign(id, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}
