package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	SessionTTL = 30 * 24 * time.Hour
	AdminTTL   = 12 * time.Hour
)

// IssueSessionToken signs a token naming a storefront session.
func IssueSessionToken(secret []byte, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"role":       RoleCustomer,
		"exp":        time.Now().Add(SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func IssueAdminToken(secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"role": RoleAdmin,
		"exp":  time.Now().Add(AdminTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, bool) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	return claims, ok
}

// SessionIDFromCtx reads the session id placed in c.Locals("user") by the
// jwt middleware.
func SessionIDFromCtx(c *fiber.Ctx) (string, error) {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	id, ok := claims["session_id"].(string)
	if !ok || id == "" {
		return "", fiber.ErrUnauthorized
	}
	return id, nil
}

func IsAdmin(c *fiber.Ctx) bool {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return role == RoleAdmin
}

// RequireAdmin rejects requests whose token lacks the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin access required"})
		}
		return c.Next()
	}
}
