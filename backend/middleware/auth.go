package middleware

import (
	"strings"

	"codeclub/backend/config"
	"codeclub/backend/services"
	"codeclub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Protected resolves the bearer token into an Identity and stores it on the
// request context. Requests without a valid token never reach the handler.
func Protected(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.Unauthorized(c, "missing authorization header")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization header format")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := services.ResolveIdentity(tokenString, cfg)
		if err != nil {
			return utils.Fail(c, err)
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole denies the request unless the resolved identity carries the
// role. Membership is flat; no role implies another.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return utils.Unauthorized(c, "no identity on request")
		}
		if !identity.HasRole(role) {
			return utils.Forbidden(c, "insufficient role")
		}
		return c.Next()
	}
}

func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
