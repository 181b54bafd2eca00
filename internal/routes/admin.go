package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/stats"
)

// RegisterAdminRoutes wires the admin dashboard endpoint.
func RegisterAdminRoutes(app *fiber.App, h *stats.Handler, requireAuth, requireAdmin fiber.Handler) {
	app.Get("/admin-stats", requireAuth, requireAdmin, h.Dashboard)
}
