package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body", Code: dto.CodeValidation,
		})
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Validation failed", Code: dto.CodeValidation, Errors: ve.Fields,
			})
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Message: "User already exists", Code: dto.CodeDuplicateEntry,
			})
		}
		return internalError(c, "registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body", Code: dto.CodeValidation,
		})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Invalid credentials", Code: dto.CodeUnauthorized,
			})
		}
		return internalError(c, "login failed", err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Residents(c *fiber.Ctx) error {
	residents, err := h.authService.Residents()
	if err != nil {
		return internalError(c, "listing residents failed", err)
	}
	return c.JSON(dto.ResidentsResponse{Residents: residents})
}
