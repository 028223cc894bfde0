package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nuttawut-l/storefront-backend/internal/order"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, requireAdmin fiber.Handler) {
	app.Get("/api/admin/stats", requireAdmin, h.stats)
	app.Put("/api/admin/orders/:id/status", requireAdmin, h.setOrderStatus)
}

func (h *Handler) stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(stats)
}

func (h *Handler) setOrderStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "status is required"})
	}

	// any status string is accepted, the lifecycle values are not enforced
	err := h.service.SetOrderStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		if err == order.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}
