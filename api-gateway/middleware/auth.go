package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/foodgram/pkg/auth"
)

// RequireAuth rejects requests without a valid bearer token. Validated
// claims are forwarded to upstreams via X-User headers so services do not
// have to re-parse the token.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := bearerClaims(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "valid bearer token required",
			})
		}
		stashClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuth resolves claims when a valid token is present but lets
// anonymous requests through untouched.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, ok := bearerClaims(c); ok {
			stashClaims(c, claims)
		}
		return c.Next()
	}
}

// RequireAdmin rejects non-admin users. Must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

func bearerClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func stashClaims(c *fiber.Ctx, claims *auth.Claims) {
	c.Locals("user_id", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)

	c.Request().Header.Set("X-User-ID", strconv.FormatUint(uint64(claims.UserID), 10))
	c.Request().Header.Set("X-Username", claims.Username)
	c.Request().Header.Set("X-User-Role", claims.Role)
}
