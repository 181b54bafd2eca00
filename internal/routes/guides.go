package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/guides"
)

// RegisterGuideRoutes wires the guide promotion workflow. Applying takes any
// authenticated user; deciding is admin-only.
func RegisterGuideRoutes(app *fiber.App, h *guides.Handler, requireAuth, requireAdmin fiber.Handler) {
	app.Post("/applications", requireAuth, h.Apply)
	app.Get("/applications", requireAuth, requireAdmin, h.List)
	app.Put("/applications/accept/:id", requireAuth, requireAdmin, h.Accept)
	app.Delete("/applications/reject/:id", requireAuth, requireAdmin, h.Reject)
}
