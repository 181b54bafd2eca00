package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/config"
	"github.com/wayfari/wayfari/internal/logging"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	err := Setup(app, Deps{
		Cfg: config.Config{
			AppName:     "wayfari-test",
			AppEnv:      "dev",
			TokenSecret: "routes-test-secret",
			TokenTTL:    time.Hour,
		},
		Logger: logging.Discard(),
	})
	if err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, path, token, body string) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.app.Test(req, 5000)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("read %s %s body: %v", method, path, err)
	}
	resp.Body.Close()

	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded
}

func (c client) issueToken(email string) string {
	c.t.Helper()

	status, body := c.do(fiber.MethodPost, "/jwt", "", `{"email":"`+email+`"}`)
	if status != fiber.StatusOK {
		c.t.Fatalf("issue token for %s: status %d", email, status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		c.t.Fatalf("issue token for %s: no token in response", email)
	}
	return token
}

func (c client) register(token, email, role string) {
	c.t.Helper()

	status, _ := c.do(fiber.MethodPost, "/users", token,
		`{"email":"`+email+`","role":"`+role+`","name":"Test User"}`)
	if status != fiber.StatusOK {
		c.t.Fatalf("register %s: status %d", email, status)
	}
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}

	touristToken := c.issueToken("tourist@example.com")
	c.register(touristToken, "tourist@example.com", "tourist")

	status, body := c.do(fiber.MethodPost, "/bookings", touristToken,
		`{"touristEmail":"tourist@example.com","packageId":"pkg-1","price":120}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create booking: status %d", status)
	}
	bookingID, _ := body["insertedId"].(string)
	if bookingID == "" {
		t.Fatalf("create booking: no insertedId in %v", body)
	}

	// Unauthenticated creation is refused.
	if status, _ := c.do(fiber.MethodPost, "/bookings", "",
		`{"touristEmail":"tourist@example.com"}`); status != fiber.StatusUnauthorized {
		t.Fatalf("unauthenticated create: expected 401, got %d", status)
	}

	// Payment attachment moves the booking into review.
	status, body = c.do(fiber.MethodPut, "/bookings/"+bookingID, "",
		`{"transactionId":"tx_1","paymentPrice":120,"paymentEmail":"tourist@example.com"}`)
	if status != fiber.StatusOK {
		t.Fatalf("attach payment: status %d", status)
	}
	if got := body["status"]; got != "in-review" {
		t.Fatalf("attach payment: status field = %v, want in-review", got)
	}

	status, body = c.do(fiber.MethodPatch, "/bookings/status/"+bookingID, touristToken,
		`{"status":"accepted"}`)
	if status != fiber.StatusOK {
		t.Fatalf("set status: status %d", status)
	}
	if got := body["status"]; got != "accepted" {
		t.Fatalf("set status: status field = %v, want accepted", got)
	}

	if status, _ := c.do(fiber.MethodPatch, "/bookings/status/"+bookingID, touristToken,
		`{"status":"bogus"}`); status != fiber.StatusBadRequest {
		t.Fatalf("bogus status: expected 400, got %d", status)
	}

	// Tourist-scoped listing returns the single booking.
	req := httptest.NewRequest(fiber.MethodGet,
		"/bookings?email=tourist@example.com&role=tourist", nil)
	resp, err := c.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	var listed []map[string]any
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("decode booking list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 booking for tourist, got %d", len(listed))
	}

	// The owning tourist may delete their booking.
	status, body = c.do(fiber.MethodDelete, "/bookings/"+bookingID, touristToken, "")
	if status != fiber.StatusOK {
		t.Fatalf("delete booking: status %d", status)
	}
	if got := body["deletedCount"]; got != float64(1) {
		t.Fatalf("delete booking: deletedCount = %v, want 1", got)
	}
}

func TestGuidePromotionOverHTTP(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}

	adminToken := c.issueToken("admin@example.com")
	applicantToken := c.issueToken("applicant@example.com")
	c.register(adminToken, "admin@example.com", "admin")
	c.register(applicantToken, "applicant@example.com", "tourist")

	// The review queue is admin only.
	if status, _ := c.do(fiber.MethodGet, "/applications", applicantToken, ""); status != fiber.StatusForbidden {
		t.Fatalf("applications as tourist: expected 403, got %d", status)
	}

	status, body := c.do(fiber.MethodPost, "/applications", applicantToken,
		`{"applicantEmail":"applicant@example.com","title":"Hill tracts trekking"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("apply: status %d", status)
	}
	appID, _ := body["insertedId"].(string)
	if appID == "" {
		t.Fatalf("apply: no insertedId in %v", body)
	}

	status, body = c.do(fiber.MethodPut, "/applications/accept/"+appID, adminToken,
		`{"userEmail":"applicant@example.com"}`)
	if status != fiber.StatusOK {
		t.Fatalf("accept: status %d", status)
	}
	if promoted, _ := body["promoted"].(bool); !promoted {
		t.Fatalf("accept: expected promoted=true, got %v", body)
	}

	// Classification is public and reflects the new role.
	status, body = c.do(fiber.MethodGet, "/users/admin/guide/applicant@example.com", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("classify: status %d", status)
	}
	if guide, _ := body["guide"].(bool); !guide {
		t.Fatalf("classify: expected guide=true, got %v", body)
	}
	if admin, _ := body["admin"].(bool); admin {
		t.Fatalf("classify: expected admin=false, got %v", body)
	}

	// The promoted guide still cannot reach admin routes with the same token.
	if status, _ := c.do(fiber.MethodGet, "/users", applicantToken, ""); status != fiber.StatusForbidden {
		t.Fatalf("user list as guide: expected 403, got %d", status)
	}
	if status, _ := c.do(fiber.MethodGet, "/users", adminToken, ""); status != fiber.StatusOK {
		t.Fatalf("user list as admin: expected 200, got %d", status)
	}
}

func TestHealthEndpoint(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}

	status, body := c.do(fiber.MethodGet, "/healthz", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("healthz: status %d", status)
	}
	if body["status"] == nil {
		t.Fatalf("healthz: missing status in %v", body)
	}
}
