package payments

import (
	"math"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const defaultCurrency = "usd"

// Handler exposes the payment-intent HTTP endpoint.
type Handler struct {
	creator IntentCreator
}

// NewHandler builds a payment HTTP handler.
func NewHandler(creator IntentCreator) *Handler {
	return &Handler{creator: creator}
}

type intentRequest struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

// CreateIntent converts the price to minor units and returns the gateway's
// client secret.
func (h *Handler) CreateIntent(c *fiber.Ctx) error {
	var req intentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Price <= 0 {
		return fiber.NewError(http.StatusBadRequest, "price must be positive")
	}
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	amount := int64(math.Round(req.Price * 100))
	secret, err := h.creator.CreateIntent(c.UserContext(), amount, currency)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"clientSecret": secret})
}
