package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/payments"
)

// RegisterPaymentRoutes wires the payment-intent endpoint.
func RegisterPaymentRoutes(app *fiber.App, h *payments.Handler, requireAuth fiber.Handler) {
	app.Post("/create-payment-intent", requireAuth, h.CreateIntent)
}
