package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

// LookupFunc resolves a token subject to the stored user's identity. It must
// fail when the user no longer exists so stale tokens are rejected.
type LookupFunc func(ctx context.Context, id string) (Identity, error)

// Middleware turns the jwtware-validated token into an Identity available to
// handlers via IdentityFromCtx.
type Middleware struct {
	lookup LookupFunc
}

func NewMiddleware(lookup LookupFunc) *Middleware {
	return &Middleware{lookup: lookup}
}

// LoadIdentity reads the parsed token from c.Locals("user") (set by the JWT
// middleware), resolves the subject claim against the user store and stashes
// the resulting Identity for the rest of the chain.
func (m *Middleware) LoadIdentity(c *fiber.Ctx) error {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	ident, err := m.lookup(c.Context(), sub)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "User not found"})
	}

	SetIdentity(c, ident)
	return c.Next()
}

// AdminOnly rejects callers whose resolved role is not admin.
func (m *Middleware) AdminOnly(c *fiber.Ctx) error {
	ident, err := IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	if !ident.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
	}
	return c.Next()
}

// SetIdentity stores the identity on the request. Exposed for test setups
// that bypass token parsing.
func SetIdentity(c *fiber.Ctx, ident Identity) {
	c.Locals(identityKey, ident)
}

// IdentityFromCtx returns the identity resolved by LoadIdentity.
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	ident, ok := c.Locals(identityKey).(Identity)
	if !ok || ident.ID == "" {
		return Identity{}, fiber.ErrUnauthorized
	}
	return ident, nil
}
