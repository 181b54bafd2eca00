package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/bookings"
)

// RegisterBookingRoutes wires booking lifecycle endpoints. Payment attachment
// and the status transition are called by the payment frontend and the guide
// dashboard respectively; the listing endpoint narrows by the requester's
// role and email query parameters.
func RegisterBookingRoutes(app *fiber.App, h *bookings.Handler, requireAuth fiber.Handler) {
	app.Post("/bookings", requireAuth, h.Create)
	app.Get("/bookings", h.List)
	app.Put("/bookings/:id", h.AttachPayment)
	app.Patch("/bookings/status/:id", requireAuth, h.SetStatus)
	app.Delete("/bookings/:id", requireAuth, h.Remove)
}
