package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rxtech-lab/sugarfunge-integration/internal/apierrors"
	"github.com/rxtech-lab/sugarfunge-integration/internal/utils"
)

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	// Audience, when set, must appear in the token's aud claim
	Audience string
	// JWTAuthenticator validates bearer tokens. A nil authenticator disables auth.
	JWTAuthenticator *utils.JwtAuthenticator
	// Skip reports requests that bypass auth, e.g. health checks
	Skip func(c *fiber.Ctx) bool
}

// AuthMiddleware returns a Fiber middleware for Bearer token authentication
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.JWTAuthenticator == nil || (cfg.Skip != nil && cfg.Skip(c)) {
			return c.Next()
		}

		authHeader := c.Get(fiber.HeaderAuthorization)
		var token string
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		}

		if token == "" {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="sugarfunge"`)
			return unauthorized(c, "Missing or invalid Bearer token")
		}

		user, err := cfg.JWTAuthenticator.ValidateToken(token)
		if err != nil {
			c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="sugarfunge", error="invalid_token"`)
			return unauthorized(c, "Invalid token")
		}

		if cfg.Audience != "" {
			hasValidAudience := false
			for _, aud := range user.Aud {
				if aud == cfg.Audience {
					hasValidAudience = true
					break
				}
			}
			if !hasValidAudience {
				c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="sugarfunge", error="invalid_token"`)
				return unauthorized(c, "Invalid audience")
			}
		}

		c.Locals("user", user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(apierrors.ToResponse(apierrors.Unauthorized("%s", message)))
}

// GetAuthenticatedUser retrieves the authenticated user from Fiber context
// Returns nil if no user is found or if user is not of correct type
func GetAuthenticatedUser(c *fiber.Ctx) *utils.AuthenticatedUser {
	user, ok := c.Locals("user").(*utils.AuthenticatedUser)
	if !ok {
		return nil
	}
	return user
}
