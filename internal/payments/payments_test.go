package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStaticCreator(t *testing.T) {
	creator := StaticCreator{}

	secret, err := creator.CreateIntent(context.Background(), 12050, "usd")
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if secret == "" {
		t.Fatal("expected a client secret")
	}

	if _, err := creator.CreateIntent(context.Background(), 0, "usd"); err == nil {
		t.Fatal("expected error for non-positive amount")
	}
}

func TestCreateIntentHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/create-payment-intent", NewHandler(StaticCreator{}).CreateIntent)

	post := func(body string) (int, map[string]any) {
		req := httptest.NewRequest(fiber.MethodPost, "/create-payment-intent", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		resp.Body.Close()
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)
		return resp.StatusCode, decoded
	}

	status, body := post(`{"price": 120.5}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if secret, _ := body["clientSecret"].(string); secret == "" {
		t.Fatalf("expected clientSecret in response, got %v", body)
	}

	if status, _ := post(`{"price": 0}`); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero price, got %d", status)
	}
	if status, _ := post(`{"price": -5}`); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", status)
	}
}
