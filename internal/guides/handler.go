package guides

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes guide application HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a guide application HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Apply submits a guide application for the authenticated tourist.
func (h *Handler) Apply(c *fiber.Ctx) error {
	var app Application
	if err := c.BodyParser(&app); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if app.ApplicantEmail == "" {
		return fiber.NewError(http.StatusBadRequest, "applicantEmail is required")
	}

	id, err := h.service.Apply(c.UserContext(), app)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"insertedId": id})
}

// List returns the admin review queue.
func (h *Handler) List(c *fiber.Ctx) error {
	all, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	if all == nil {
		all = []Application{}
	}
	return c.JSON(all)
}

// Accept promotes the applicant to guide and deletes the application.
func (h *Handler) Accept(c *fiber.Ctx) error {
	var req struct {
		UserEmail string `json:"userEmail"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.UserEmail == "" {
		return fiber.NewError(http.StatusBadRequest, "userEmail is required")
	}

	result, err := h.service.Accept(c.UserContext(), c.Params("id"), req.UserEmail)
	if errors.Is(err, ErrInvalidID) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Reject deletes the application, leaving the applicant's role untouched.
func (h *Handler) Reject(c *fiber.Ctx) error {
	deleted, err := h.service.Reject(c.UserContext(), c.Params("id"))
	if errors.Is(err, ErrInvalidID) {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deletedCount": deleted})
}
