package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetUserIdFromToken reads the authenticated user id out of the JWT the
// auth middleware stored in Locals. Returns 0 for anonymous requests.
func GetUserIdFromToken(c *fiber.Ctx) uint {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	id, ok := claims["userId"].(float64)
	if !ok {
		return 0
	}
	return uint(id)
}
