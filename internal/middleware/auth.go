package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/wayfari/wayfari/internal/token"
	"github.com/wayfari/wayfari/internal/users"
)

const (
	identityEmailKey  = "identity_email"
	identityClaimsKey = "identity_claims"
)

// IdentityEmail returns the authenticated caller's email, or the empty string
// when the token carried no email claim.
func IdentityEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(identityEmailKey).(string)
	return email
}

// RequireAuth validates the bearer token and attaches the decoded identity to
// the request. Missing, malformed or expired tokens all read as unauthorized;
// the reason stays server-side.
func RequireAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authz, "Bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized access")
		}

		claims, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "unauthorized access")
		}

		email, _ := claims["email"].(string)
		c.Locals(identityEmailKey, email)
		c.Locals(identityClaimsKey, claims)
		return c.Next()
	}
}

// RequireAdmin gates a route to admin users. The role is re-read from storage
// on every request so demotions take effect without waiting out the token.
func RequireAdmin(userSvc *users.Service) fiber.Handler {
	return requireRole(userSvc, users.RoleAdmin)
}

// RequireGuide gates a route to guide users. A missing user record reads as
// forbidden, same as a wrong role.
func RequireGuide(userSvc *users.Service) fiber.Handler {
	return requireRole(userSvc, users.RoleGuide)
}

func requireRole(userSvc *users.Service, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := IdentityEmail(c)
		if email == "" {
			return fiber.NewError(http.StatusBadRequest, "identity carries no email")
		}

		user, err := userSvc.Get(c.UserContext(), email)
		if errors.Is(err, users.ErrNotFound) {
			return fiber.NewError(http.StatusForbidden, "forbidden access")
		}
		if err != nil {
			return err
		}
		if user.Role != role {
			return fiber.NewError(http.StatusForbidden, "forbidden access")
		}
		return c.Next()
	}
}
