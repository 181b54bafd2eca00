package bookings

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/middleware"
	"github.com/wayfari/wayfari/internal/users"
)

// Handler exposes booking HTTP endpoints.
type Handler struct {
	service *Service
	users   *users.Service
}

// NewHandler builds a booking HTTP handler.
func NewHandler(service *Service, userSvc *users.Service) *Handler {
	return &Handler{service: service, users: userSvc}
}

// Create inserts a pending booking for the authenticated tourist.
func (h *Handler) Create(c *fiber.Ctx) error {
	var b Booking
	if err := c.BodyParser(&b); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if b.TouristEmail == "" {
		return fiber.NewError(http.StatusBadRequest, "touristEmail is required")
	}

	id, err := h.service.Create(c.UserContext(), b)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"insertedId": id})
}

// AttachPayment records payment fields and moves the booking into in-review.
func (h *Handler) AttachPayment(c *fiber.Ctx) error {
	var p Payment
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.service.AttachPayment(c.UserContext(), c.Params("id"), p)
	switch {
	case errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(fiber.Map{"status": StatusInReview})
}

// SetStatus moves the booking to one of the allowed target statuses.
func (h *Handler) SetStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.service.SetStatus(c.UserContext(), c.Params("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(fiber.Map{"status": req.Status})
}

// Remove deletes a booking. Only the owning tourist or an admin may do so.
func (h *Handler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")

	booking, err := h.service.Get(c.UserContext(), id)
	switch {
	case errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case err != nil:
		return err
	}

	email := middleware.IdentityEmail(c)
	if booking.TouristEmail != email {
		requester, err := h.users.Get(c.UserContext(), email)
		if err != nil || requester.Role != users.RoleAdmin {
			return fiber.NewError(http.StatusForbidden, "forbidden")
		}
	}

	deleted, err := h.service.Remove(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"deletedCount": deleted})
}

// List returns bookings filtered by the requester's email and role query
// parameters.
func (h *Handler) List(c *fiber.Ctx) error {
	result, err := h.service.ListByFilter(c.UserContext(), c.Query("email"), c.Query("role"))
	if err != nil {
		return err
	}
	if result == nil {
		result = []Booking{}
	}
	return c.JSON(result)
}
