package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/catalog"
)

// RegisterCatalogRoutes wires the package and story pass-through endpoints.
// Reads are public for the landing pages; writes need an identity.
func RegisterCatalogRoutes(app *fiber.App, h *catalog.Handler, requireAuth fiber.Handler) {
	app.Get("/packages/sample", h.SamplePackages)
	app.Get("/packages/:id", h.PackageByID)
	app.Post("/packages", requireAuth, h.AddPackage)

	app.Get("/stories", h.ListStories)
	app.Get("/stories/:id", h.StoryByID)
	app.Post("/stories", requireAuth, h.AddStory)
}
