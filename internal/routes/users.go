package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/users"
)

// RegisterUserRoutes wires user endpoints. Registration and the admin/guide
// classification lookup are public; the rest require a verified identity.
func RegisterUserRoutes(app *fiber.App, h *users.Handler, requireAuth, requireAdmin fiber.Handler) {
	app.Post("/users", h.Register)
	app.Get("/users/admin/guide/:email", h.Classify)

	app.Get("/users", requireAuth, requireAdmin, h.List)
	app.Get("/users/:email", requireAuth, h.Get)
	app.Put("/users/update/:id", requireAuth, h.Update)
}
