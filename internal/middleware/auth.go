package middleware

import (
	"errors"
	"log/slog"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/config"
	"github.com/gatewatch/vpms-backend/internal/dto"
)

// Protected verifies the bearer token and stores it in c.Locals("user").
// Expired and malformed tokens both answer 401 but carry distinct error
// codes and are logged differently.
func Protected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwt.ErrTokenExpired) {
				slog.Info("expired token rejected", "path", c.Path(), "ip", c.IP())
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Message: "Token expired", Code: dto.CodeExpiredToken,
				})
			}
			slog.Warn("invalid token rejected", "path", c.Path(), "ip", c.IP(), "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Invalid or missing token", Code: dto.CodeInvalidToken,
			})
		},
	})
}

// CurrentUser extracts the verified identity claims stored by Protected.
func CurrentUser(c *fiber.Ctx) (*auth.Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, auth.ErrTokenInvalid
	}
	return auth.ClaimsFromToken(token)
}
