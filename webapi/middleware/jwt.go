// Package middleware holds the fiber middleware for authentication, role
// gating and request logging.
package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/webapi/common"
)

// JwtProtected rejects requests without a valid bearer token.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
		},
	})
}

// RequireRoles allows the request through only when the token's role claim
// matches one of roles. Must sit behind JwtProtected.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := TokenRole(c)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return common.ProblemDetailsJSON(c, "Forbidden", nil,
			"insufficient role", fiber.StatusForbidden)
	}
}

// TokenRole extracts the role claim from the validated token, or "".
func TokenRole(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// TokenUsername extracts the username claim from the validated token, or "".
func TokenUsername(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}
