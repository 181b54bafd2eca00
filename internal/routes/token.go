package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wayfari/wayfari/internal/middleware"
	"github.com/wayfari/wayfari/internal/token"
)

const issuePerMinute = 10

// RegisterTokenRoutes wires the public token issuance endpoint. The body is
// the claim set; whatever the client sends becomes the identity assertion,
// which is why every role check later re-reads storage instead of trusting
// the token.
func RegisterTokenRoutes(app *fiber.App, tokens *token.Service, cache *redis.Client) {
	app.Post("/jwt", middleware.IssueRateLimit(cache, issuePerMinute), func(c *fiber.Ctx) error {
		var claims map[string]any
		if err := c.BodyParser(&claims); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		signed, err := tokens.Issue(claims)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"token": signed})
	})
}
