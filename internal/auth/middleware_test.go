package auth

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func TestIssuerSign_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", 7*24*time.Hour)

	signed, err := issuer.Sign("u1", "a@example.com", RoleCustomer)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	tok, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("expected valid token, got err=%v", err)
	}

	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "u1" || claims["email"] != "a@example.com" || claims["role"] != RoleCustomer {
		t.Fatalf("unexpected claims: %v", claims)
	}

	exp := int64(claims["exp"].(float64))
	week := time.Now().Add(7 * 24 * time.Hour).Unix()
	if exp < week-60 || exp > week+60 {
		t.Fatalf("expected ~7 day expiry, got %d", exp)
	}
}

func fakeToken(sub string) *jwt.Token {
	return &jwt.Token{Claims: jwt.MapClaims{"sub": sub}}
}

func TestLoadIdentity(t *testing.T) {
	mw := NewMiddleware(func(ctx context.Context, id string) (Identity, error) {
		if id == "known" {
			return Identity{ID: "known", Email: "k@example.com", Role: RoleCustomer}, nil
		}
		return Identity{}, errors.New("user not found")
	})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if sub := c.Get("X-Sub"); sub != "" {
			c.Locals("user", fakeToken(sub))
		}
		return c.Next()
	})
	app.Use(mw.LoadIdentity)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		ident, err := IdentityFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		return c.JSON(ident)
	})

	// no token in locals at all
	res, _ := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", res.StatusCode)
	}

	// token subject no longer resolves to a stored user
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Sub", "deleted")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for vanished user, got %d", res.StatusCode)
	}

	// happy path
	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("X-Sub", "known")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "k@example.com") {
		t.Fatalf("identity not resolved: %s", string(b))
	}
}

func TestAdminOnly(t *testing.T) {
	mw := NewMiddleware(nil)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			role := c.Get("X-User-Role")
			if role == "" {
				role = RoleCustomer
			}
			SetIdentity(c, Identity{ID: id, Role: role})
		}
		return c.Next()
	})
	app.Get("/secret", mw.AdminOnly, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	res, _ := app.Test(httptest.NewRequest("GET", "/secret", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/secret", nil)
	req.Header.Set("X-User-ID", "u1")
	req.Header.Set("X-User-Role", RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res.StatusCode)
	}
}
