package product

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
)

func newTestApp(seed []Product) *fiber.App {
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

	h := NewHandler(NewService(NewInMemoryRepository(seed)))
	h.RegisterPublicRoutes(app)

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
	h.RegisterAdminRoutes(app, requireAdmin)
	return app
}

func seedCatalog() []Product {
	return []Product{
		{ID: "p1", Name: "Dog Food", Category: "food", Price: 12.5, Stock: 3},
		{ID: "p2", Name: "Cat Food", Category: "food", Price: 9.0, Stock: 5},
		{ID: "p3", Name: "Chew Toy", Category: "toys", Price: 4.5, Stock: 10},
	}
}

func TestListProducts_Filters(t *testing.T) {
	app := newTestApp(seedCatalog())

	cases := []struct {
		path string
		want int
	}{
		{"/api/products", 3},
		{"/api/products?category=food", 2},
		{"/api/products?search=FOOD", 2},
		{"/api/products?category=toys&search=chew", 1},
		{"/api/products?category=none", 0},
	}

	for _, tc := range cases {
		res, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("%s: expected 200, got %d", tc.path, res.StatusCode)
		}

		var got []Product
		if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
			t.Fatalf("%s: decode: %v", tc.path, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d products, got %d", tc.path, tc.want, len(got))
		}
	}
}

func TestGetProduct(t *testing.T) {
	app := newTestApp(seedCatalog())

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products/p1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Dog Food") {
		t.Fatalf("unexpected body: %s", string(b))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/products/missing", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	app := newTestApp(nil)
	body := `{"name":"Leash","price":7.5,"category":"accessories","stock":4}`

	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "u1")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"","price":-1,"stock":-2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	for _, field := range []string{"name", "price", "stock"} {
		if !strings.Contains(string(b), field) {
			t.Fatalf("expected %q in validation errors: %s", field, string(b))
		}
	}
}

func TestUpdateProduct(t *testing.T) {
	app := newTestApp(seedCatalog())

	req := httptest.NewRequest("PUT", "/api/products/p1", strings.NewReader(`{"name":"Dog Food Deluxe","price":15,"category":"food","stock":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Product updated") {
		t.Fatalf("unexpected body: %s", string(b))
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/products/p1", nil))
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Dog Food Deluxe") {
		t.Fatalf("update not persisted: %s", string(b))
	}

	req = httptest.NewRequest("PUT", "/api/products/missing", strings.NewReader(`{"name":"X","price":1,"stock":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestDeleteProduct(t *testing.T) {
	app := newTestApp(seedCatalog())

	req := httptest.NewRequest("DELETE", "/api/products/p2", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/products/p2", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("DELETE", "/api/products/p2", nil)
	req.Header.Set("X-User-ID", "a1")
	req.Header.Set("X-User-Role", auth.RoleAdmin)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", res.StatusCode)
	}
}
