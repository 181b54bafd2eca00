package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/store"
	"github.com/wayfari/wayfari/internal/token"
	"github.com/wayfari/wayfari/internal/users"
)

func newAuthApp(t *testing.T) (*fiber.App, *token.Service, *users.Service) {
	t.Helper()
	tokens := token.New("test-secret", time.Hour)
	userSvc := users.NewService(store.NewMemory())

	app := fiber.New()
	app.Get("/protected", RequireAuth(tokens), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": IdentityEmail(c)})
	})
	app.Get("/admin", RequireAuth(tokens), RequireAdmin(userSvc), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/guide", RequireAuth(tokens), RequireGuide(userSvc), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, tokens, userSvc
}

func request(t *testing.T, app *fiber.App, path, bearer string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	app, tokens, _ := newAuthApp(t)

	if status := request(t, app, "/protected", ""); status != fiber.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", status)
	}
	if status := request(t, app, "/protected", "garbage"); status != fiber.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", status)
	}

	expired := token.New("test-secret", -time.Minute)
	signed, err := expired.Issue(map[string]any{"email": "u@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if status := request(t, app, "/protected", signed); status != fiber.StatusUnauthorized {
		t.Fatalf("expired token: expected 401, got %d", status)
	}

	signed, err = tokens.Issue(map[string]any{"email": "u@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if status := request(t, app, "/protected", signed); status != fiber.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", status)
	}
}

func TestRequireAdmin(t *testing.T) {
	app, tokens, userSvc := newAuthApp(t)
	ctx := context.Background()

	if _, _, err := userSvc.Register(ctx, users.User{Email: "admin@x.com", Role: users.RoleAdmin}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := userSvc.Register(ctx, users.User{Email: "plain@x.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name   string
		claims map[string]any
		want   int
	}{
		{"admin", map[string]any{"email": "admin@x.com"}, fiber.StatusOK},
		{"non-admin", map[string]any{"email": "plain@x.com"}, fiber.StatusForbidden},
		{"unknown user", map[string]any{"email": "ghost@x.com"}, fiber.StatusForbidden},
		{"no email claim", map[string]any{"name": "anonymous"}, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		signed, err := tokens.Issue(tc.claims)
		if err != nil {
			t.Fatalf("%s: issue: %v", tc.name, err)
		}
		if status := request(t, app, "/admin", signed); status != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, status)
		}
	}
}

func TestRequireGuide(t *testing.T) {
	app, tokens, userSvc := newAuthApp(t)
	ctx := context.Background()

	if _, _, err := userSvc.Register(ctx, users.User{Email: "guide@x.com", Role: users.RoleGuide}); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		name  string
		email string
		want  int
	}{
		{"guide", "guide@x.com", fiber.StatusOK},
		// A missing user record must read as forbidden, not crash.
		{"unknown user", "ghost@x.com", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		signed, err := tokens.Issue(map[string]any{"email": tc.email})
		if err != nil {
			t.Fatalf("%s: issue: %v", tc.name, err)
		}
		if status := request(t, app, "/guide", signed); status != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, status)
		}
	}
}

func TestRoleIsReReadPerRequest(t *testing.T) {
	app, tokens, userSvc := newAuthApp(t)
	ctx := context.Background()

	if _, _, err := userSvc.Register(ctx, users.User{Email: "t@x.com", Role: users.RoleTourist}); err != nil {
		t.Fatalf("register: %v", err)
	}

	signed, err := tokens.Issue(map[string]any{"email": "t@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if status := request(t, app, "/guide", signed); status != fiber.StatusForbidden {
		t.Fatalf("before promotion: expected 403, got %d", status)
	}

	if _, err := userSvc.PromoteToGuide(ctx, "t@x.com"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	// Same token passes once the stored role changes.
	if status := request(t, app, "/guide", signed); status != fiber.StatusOK {
		t.Fatalf("after promotion: expected 200, got %d", status)
	}
}
