package middleware

import (
	"fmt"
	"strings"

	"versora/internal/config"
	"versora/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the fiber.Ctx Locals key holding the authenticated user id.
const UserIDKey = "user_id"

// Protected verifies the bearer token issued by the hosted auth provider and
// exposes its subject as the user id. Login and session management live with
// the provider; this boundary only checks signatures.
func Protected(authCfg config.AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return domain.NewUnauthorizedError("missing authorization header")
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return domain.NewUnauthorizedError("authorization header must be a bearer token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(authCfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return domain.NewUnauthorizedError("invalid or expired token")
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			return domain.NewUnauthorizedError("token has no subject")
		}

		c.Locals(UserIDKey, subject)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Protected.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
