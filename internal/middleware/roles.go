package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after Protected.
func RequireRoles(roles ...workflow.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := CurrentUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Unauthorized", Code: dto.CodeUnauthorized,
			})
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Message: "Insufficient permissions", Code: dto.CodeForbidden,
		})
	}
}
