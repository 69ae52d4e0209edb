package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/middleware"
	"github.com/gatewatch/vpms-backend/internal/services"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

type RecordHandler struct {
	recordService *services.RecordService
}

func NewRecordHandler(recordService *services.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// Create logs a visitor or parcel. Guard-only at the route level; the acting
// guard becomes security_guard_id.
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body", Code: dto.CodeValidation,
		})
	}

	record, err := h.recordService.Create(claims, &req)
	if err != nil {
		return recordError(c, "create record", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RecordData{
		Message: fmt.Sprintf("%s logged successfully", record.Type),
		Data:    record,
	})
}

func (h *RecordHandler) GetByID(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidRecordID(c)
	}

	record, err := h.recordService.Get(id)
	if err != nil {
		return recordError(c, "fetch record", err)
	}

	// Residents may only see their own records.
	if claims.Role == workflow.RoleResident && record.ResidentID != claims.UserID {
		return forbidden(c)
	}

	return c.JSON(dto.RecordData{Data: record})
}

// GetByResident serves both the resident's own view (path param ignored) and
// the guard/admin per-resident view.
func (h *RecordHandler) GetByResident(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	residentID := claims.UserID
	if claims.Role != workflow.RoleResident {
		residentID, err = uuid.Parse(c.Params("residentId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Invalid resident ID", Code: dto.CodeValidation,
			})
		}
	}

	records, err := h.recordService.ListByResident(residentID, c.Query("type"))
	if err != nil {
		return recordError(c, "list resident records", err)
	}

	return c.JSON(dto.RecordList{Data: records})
}

func (h *RecordHandler) PendingApprovals(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	records, err := h.recordService.PendingApprovals(claims.UserID)
	if err != nil {
		return recordError(c, "list pending approvals", err)
	}

	return c.JSON(dto.RecordList{Data: records})
}

func (h *RecordHandler) GetAll(c *fiber.Ctx) error {
	filters := dto.RecordFilters{
		Type:       c.Query("type"),
		Status:     c.Query("status"),
		ResidentID: c.Query("resident_id"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}

	records, total, err := h.recordService.List(filters)
	if err != nil {
		return recordError(c, "list records", err)
	}

	return c.JSON(dto.RecordPage{Data: records, Total: total})
}

func (h *RecordHandler) UpdateStatus(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidRecordID(c)
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body", Code: dto.CodeValidation,
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Status is required", Code: dto.CodeValidation,
			Errors:  []dto.FieldError{{Field: "status", Message: "Status is required"}},
		})
	}

	record, err := h.recordService.UpdateStatus(claims, id, workflow.Status(req.Status), req.Notes)
	if err != nil {
		return recordError(c, "update status", err)
	}

	return c.JSON(dto.RecordData{Message: "Status updated successfully", Data: record})
}

// Delete is a hard delete, admin-only at the route level. A missing id is a
// 404, not an internal error.
func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidRecordID(c)
	}

	deleted, err := h.recordService.Delete(id)
	if err != nil {
		return recordError(c, "delete record", err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Message: "Record not found", Code: dto.CodeNotFound,
		})
	}

	return c.JSON(fiber.Map{"message": "Record deleted successfully"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Message: "Unauthorized", Code: dto.CodeUnauthorized,
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Message: "Insufficient permissions", Code: dto.CodeForbidden,
	})
}

func invalidRecordID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Message: "Invalid record ID", Code: dto.CodeValidation,
	})
}
