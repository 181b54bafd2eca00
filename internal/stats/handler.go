package stats

import "github.com/gofiber/fiber/v2"

// Handler exposes the admin dashboard endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a stats HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard returns the admin overview payload.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}
