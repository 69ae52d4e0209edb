package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/services"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

// internalError logs the full cause server-side and answers with the generic
// envelope. The Fiber error handler decides how much detail leaves the
// process.
func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error("request failed", "action", action, "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Message: "Internal server error", Code: dto.CodeInternal,
	})
}

// recordError maps record/workflow service errors onto the envelope.
// Existence is checked before permission, so 404 and 403 stay distinct.
func recordError(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Message: "Record not found", Code: dto.CodeNotFound,
		})
	case errors.Is(err, workflow.ErrInvalidStatus), errors.Is(err, workflow.ErrUnknownType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: err.Error(), Code: dto.CodeInvalidStatus,
		})
	case errors.Is(err, workflow.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: err.Error(), Code: dto.CodeInvalidTransition,
		})
	case errors.Is(err, workflow.ErrNotPermitted):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Message: "You may not apply this status change", Code: dto.CodeForbidden,
		})
	}

	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Validation failed", Code: dto.CodeValidation, Errors: ve.Fields,
		})
	}

	return internalError(c, action, err)
}
