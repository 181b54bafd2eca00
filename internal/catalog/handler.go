package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

const defaultSampleSize = 3

// Handler exposes package and story HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SamplePackages returns a random selection for the landing page.
func (h *Handler) SamplePackages(c *fiber.Ctx) error {
	n := int64(c.QueryInt("size", defaultSampleSize))
	result, err := h.service.SamplePackages(c.UserContext(), n)
	if err != nil {
		return err
	}
	if result == nil {
		result = []bson.M{}
	}
	return c.JSON(result)
}

// PackageByID returns a single package.
func (h *Handler) PackageByID(c *fiber.Ctx) error {
	return h.byID(c, h.service.PackageByID)
}

// AddPackage inserts a package document.
func (h *Handler) AddPackage(c *fiber.Ctx) error {
	return h.insert(c, h.service.AddPackage)
}

// ListStories returns stories, capped or sampled per query parameters.
func (h *Handler) ListStories(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 0))
	sample := int64(c.QueryInt("sample", 0))
	result, err := h.service.ListStories(c.UserContext(), limit, sample)
	if err != nil {
		return err
	}
	if result == nil {
		result = []bson.M{}
	}
	return c.JSON(result)
}

// StoryByID returns a single story.
func (h *Handler) StoryByID(c *fiber.Ctx) error {
	return h.byID(c, h.service.StoryByID)
}

// AddStory inserts a story document.
func (h *Handler) AddStory(c *fiber.Ctx) error {
	return h.insert(c, h.service.AddStory)
}

func (h *Handler) byID(c *fiber.Ctx, fetch func(ctx context.Context, id string) (bson.M, error)) error {
	doc, err := fetch(c.UserContext(), c.Params("id"))
	switch {
	case errors.Is(err, ErrInvalidID):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case err != nil:
		return err
	}
	return c.JSON(doc)
}

func (h *Handler) insert(c *fiber.Ctx, add func(ctx context.Context, doc bson.M) (string, error)) error {
	var doc bson.M
	if err := c.BodyParser(&doc); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	id, err := add(c.UserContext(), doc)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"insertedId": id})
}
