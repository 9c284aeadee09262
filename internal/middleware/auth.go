package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/auth"
)

// LocalsIdentity is the fiber.Ctx locals key holding the authenticated
// caller's email identity.
const LocalsIdentity = "identity"

// Auth extracts the access token from the Authorization header (Bearer) or
// the legacy x-access-token header and stores the verified identity.
func Auth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		if hdr := c.Get("Authorization"); hdr != "" {
			parts := strings.SplitN(hdr, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization"})
			}
			token = parts[1]
		} else if hdr := c.Get("x-access-token"); hdr != "" {
			token = hdr
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		c.Locals(LocalsIdentity, identity)
		return c.Next()
	}
}
