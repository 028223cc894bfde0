package order

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuttawut-l/storefront-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/orders/create", h.createOrder)
	app.Get("/api/orders", h.listOrders)
	app.Get("/api/orders/:id", h.getOrder)
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	ident, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	paymentMethod := c.Query("payment_method")
	if paymentMethod == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "payment_method is required"})
	}

	created, err := h.service.Create(c.Context(), ident, paymentMethod)
	if err != nil {
		if err == ErrEmptyCart {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cart is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(created)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	ident, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.List(c.Context(), ident)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	ident, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	o, err := h.service.Get(c.Context(), c.Params("id"), ident)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		case ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(o)
}
