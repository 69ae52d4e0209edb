package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/middleware"
	"github.com/gatewatch/vpms-backend/internal/services"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.DashboardStats()
	if err != nil {
		return internalError(c, "dashboard stats", err)
	}
	return c.JSON(stats)
}

func (h *AdminHandler) QuickActions(c *fiber.Ctx) error {
	actions, err := h.adminService.QuickActions()
	if err != nil {
		return internalError(c, "quick actions", err)
	}
	return c.JSON(actions)
}

func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	reports, err := h.adminService.Reports(c.Query("period", "week"), c.Query("type"))
	if err != nil {
		return internalError(c, "reports", err)
	}
	return c.JSON(reports)
}

// Export serves the filtered record dump as JSON or, with format=csv, as a
// downloadable CSV file.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	rows, err := h.adminService.Export(c.Query("period", "month"), c.Query("type"))
	if err != nil {
		return internalError(c, "export", err)
	}

	if c.Query("format") == "csv" {
		data, err := services.BuildCSV(rows)
		if err != nil {
			return internalError(c, "export csv", err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="vpms_export.csv"`)
		return c.Send(data)
	}

	return c.JSON(dto.ExportResponse{Data: rows})
}

// BulkStatusUpdate applies one status to many records, each item passing
// through the same workflow checks as a single update.
func (h *AdminHandler) BulkStatusUpdate(c *fiber.Ctx) error {
	claims, err := middleware.CurrentUser(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BulkStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body", Code: dto.CodeValidation,
		})
	}
	if len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "IDs array is required", Code: dto.CodeValidation,
			Errors:  []dto.FieldError{{Field: "ids", Message: "IDs array is required"}},
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Status is required", Code: dto.CodeValidation,
			Errors:  []dto.FieldError{{Field: "status", Message: "Status is required"}},
		})
	}

	return c.JSON(h.adminService.BulkUpdateStatus(claims, &req))
}
