package middleware

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from the Authorization header, falling
// back to the "token" cookie for browser clients that store it there.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("token")
}

// authenticate verifies the request token and stores the identity in the
// request locals. On failure it writes the 401 response and returns false.
// No database access happens here; the token payload alone is trusted.
func authenticate(c *fiber.Ctx, issuer *auth.Issuer) (*auth.Identity, bool) {
	token := bearerToken(c)
	if token == "" {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authentication token required"))
		return nil, false
	}

	identity, err := issuer.Verify(token)
	if err != nil {
		AuthFailures.WithLabelValues("invalid_token").Inc()
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
		return nil, false
	}

	c.Locals("userID", identity.UserID)
	c.Locals("username", identity.Username)
	c.Locals("isAdmin", identity.IsAdmin)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
	c.SetUserContext(ctx)
	return identity, true
}

// AuthRequired enforces authentication for protected routes. On success the
// decoded identity is available in locals as "userID" (uint), "username"
// (string), and "isAdmin" (bool).
func AuthRequired(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := authenticate(c, issuer); !ok {
			return nil
		}
		return c.Next()
	}
}

// AdminRequired performs the same verification as AuthRequired and then
// rejects callers whose token lacks the admin flag with 403. The flag is
// read from the token as issued; a demotion takes effect when the token
// expires.
func AdminRequired(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := authenticate(c, issuer)
		if !ok {
			return nil
		}

		if !identity.IsAdmin {
			AuthFailures.WithLabelValues("forbidden").Inc()
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}
