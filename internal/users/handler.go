package users

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register creates a user record, or reports the existing one when the email
// is already taken.
func (h *Handler) Register(c *fiber.Ctx) error {
	var user User
	if err := c.BodyParser(&user); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if user.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email is required")
	}

	id, existed, err := h.service.Register(c.UserContext(), user)
	if err != nil {
		return err
	}
	if existed {
		return c.JSON(fiber.Map{"message": "user already exists", "insertedId": id})
	}
	return c.JSON(fiber.Map{"insertedId": id})
}

// List returns every user record. Admin only; the route applies the guard.
func (h *Handler) List(c *fiber.Ctx) error {
	all, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(all)
}

// Get returns a single user by email.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("email"))
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Update upserts profile fields on the user with the given id.
func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}

	var profile Profile
	if err := c.BodyParser(&profile); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateProfile(c.UserContext(), id, profile); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "updated"})
}

// Classify reports admin/guide flags for an email. Public lookup.
func (h *Handler) Classify(c *fiber.Ctx) error {
	cls, err := h.service.Classify(c.UserContext(), c.Params("email"))
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(cls)
}
