package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
	"github.com/nuttawut-l/storefront-backend/internal/cart"
	"github.com/nuttawut-l/storefront-backend/internal/order"
	"github.com/nuttawut-l/storefront-backend/internal/product"
)

func newTestApp(products []product.Product, orders []order.Order) (*fiber.App, *order.InMemoryRepository) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-User-ID"); id != "" {
			role := c.Get("X-User-Role")
			if role == "" {
				role = auth.RoleCustomer
			}
			auth.SetIdentity(c, auth.Identity{ID: id, Role: role})
		}
		return c.Next()
	})

	orderRepo := order.NewInMemoryRepository(orders)
	orderService := order.NewService(orderRepo, cart.NewService(cart.NewInMemoryRepository()))
	productService := product.NewService(product.NewInMemoryRepository(products))

	requireAdmin := func(c *fiber.Ctx) error {
		ident, err := auth.IdentityFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		if !ident.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		return c.Next()
	}
	NewHandler(NewService(productService, orderService)).RegisterProtectedRoutes(app, requireAdmin)
	return app, orderRepo
}

func TestStats(t *testing.T) {
	app, _ := newTestApp(
		[]product.Product{{ID: "p1"}, {ID: "p2"}},
		[]order.Order{
			{ID: "o1", UserID: "u1", Total: 10, Status: order.StatusDelivered},
			{ID: "o2", UserID: "u2", Total: 20, Status: order.StatusCancelled},
		},
	)

	req := httptest.NewRequest("GET", "/api/admin/stats", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(res.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.TotalProducts != 2 || stats.TotalOrders != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	// cancelled orders still count toward revenue
	if stats.TotalRevenue != 30 {
		t.Fatalf("expected revenue 30, got %v", stats.TotalRevenue)
	}
}

func TestStats_RequiresAdmin(t *testing.T) {
	app, _ := newTestApp(nil, nil)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/admin/stats", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", res.StatusCode)
	}

	req := httptest.NewRequest("GET", "/api/admin/stats", nil)
	req.Header.Set("X-User-ID", "u1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}
}

func TestSetOrderStatus(t *testing.T) {
	app, orderRepo := newTestApp(nil, []order.Order{
		{ID: "o1", UserID: "u1", Status: order.StatusPending},
	})

	req := httptest.NewRequest("PUT", "/api/admin/orders/o1/status?status=shipped", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Order status updated") {
		t.Fatalf("unexpected body: %s", string(b))
	}

	o, _ := orderRepo.GetByID(context.Background(), "o1")
	if o.Status != order.StatusShipped {
		t.Fatalf("status not persisted: %+v", o)
	}

	// free-form statuses are accepted as-is
	req = httptest.NewRequest("PUT", "/api/admin/orders/o1/status?status=on-hold", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for free-form status, got %d", res.StatusCode)
	}
	o, _ = orderRepo.GetByID(context.Background(), "o1")
	if o.Status != "on-hold" {
		t.Fatalf("free-form status not persisted: %+v", o)
	}
}

func TestSetOrderStatus_Errors(t *testing.T) {
	app, _ := newTestApp(nil, nil)

	req := httptest.NewRequest("PUT", "/api/admin/orders/o1/status", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 without status, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("PUT", "/api/admin/orders/missing/status?status=shipped", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Order not found") {
		t.Fatalf("unexpected body: %s", string(b))
	}
}
