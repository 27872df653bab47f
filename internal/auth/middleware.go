package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const usernameLocal = "admin_username"

// RequireAdmin returns a middleware that rejects requests without a valid
// bearer token. The verified username is stored in the request locals.
func RequireAdmin(issuer *TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}
		username, err := issuer.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}
		c.Locals(usernameLocal, username)
		return c.Next()
	}
}

// Username returns the admin username stored by RequireAdmin, or "".
func Username(c *fiber.Ctx) string {
	username, _ := c.Locals(usernameLocal).(string)
	return username
}
