package payment

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

// RegisterPublicRoutes exposes the webhook; the gateway authenticates it by
// signature, not by bearer token.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/webhook/stripe", h.webhook)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/payments/stripe/create-session", h.createSession)
	app.Get("/api/payments/stripe/status/:session_id", h.pollStatus)
}

type createSessionRequest struct {
	Amount    float64 `json:"amount"`
	OriginURL string  `json:"origin_url"`
}

func (h *Handler) createSession(c *fiber.Ctx) error {
	ident, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(createSessionRequest)
	// amount/origin_url may arrive as query parameters or a JSON body
	if v := c.QueryFloat("amount"); v > 0 {
		payload.Amount = v
		payload.OriginURL = c.Query("origin_url")
	} else if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Amount <= 0 || payload.OriginURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "amount and origin_url are required"})
	}

	sess, err := h.service.CreateSession(c.Context(), ident, payload.Amount, payload.OriginURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"url": sess.URL, "session_id": sess.ID})
}

func (h *Handler) pollStatus(c *fiber.Ctx) error {
	ident, err := auth.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	status, err := h.service.PollStatus(c.Context(), ident, c.Params("session_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(status)
}

func (h *Handler) webhook(c *fiber.Ctx) error {
	err := h.service.HandleWebhook(c.Context(), c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success"})
}
