package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/models"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

type AdminService struct {
	db      *gorm.DB
	records *RecordService
}

func NewAdminService(db *gorm.DB, records *RecordService) *AdminService {
	return &AdminService{db: db, records: records}
}

// DashboardStats aggregates record and user counts for the admin dashboard.
// Results reflect store state at query time; there is no caching layer.
func (s *AdminService) DashboardStats() (*dto.DashboardStats, error) {
	var visitors struct {
		Total, Pending, Active, Completed, Today int64
	}
	err := s.db.Model(&models.VisitorParcel{}).
		Where("type = ?", workflow.TypeVisitor).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'New' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status IN ('Approved', 'Entered') THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'Exited' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN created_at >= CURRENT_DATE THEN 1 ELSE 0 END), 0) AS today`).
		Scan(&visitors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate visitor stats: %w", err)
	}

	var parcels struct {
		Total, Pending, Acknowledged, Collected, Today int64
	}
	err = s.db.Model(&models.VisitorParcel{}).
		Where("type = ?", workflow.TypeParcel).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'Received' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'Acknowledged' THEN 1 ELSE 0 END), 0) AS acknowledged,
			COALESCE(SUM(CASE WHEN status = 'Collected' THEN 1 ELSE 0 END), 0) AS collected,
			COALESCE(SUM(CASE WHEN created_at >= CURRENT_DATE THEN 1 ELSE 0 END), 0) AS today`).
		Scan(&parcels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate parcel stats: %w", err)
	}

	var users struct {
		Total, Residents, Guards, Admins int64
	}
	err = s.db.Model(&models.User{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN role = 'Resident' THEN 1 ELSE 0 END), 0) AS residents,
			COALESCE(SUM(CASE WHEN role = 'Security Guard' THEN 1 ELSE 0 END), 0) AS guards,
			COALESCE(SUM(CASE WHEN role = 'Admin' THEN 1 ELSE 0 END), 0) AS admins`).
		Scan(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}

	return &dto.DashboardStats{
		Visitors: dto.VisitorStats{Total: visitors.Total, Pending: visitors.Pending,
			Active: visitors.Active, Completed: visitors.Completed, Today: visitors.Today},
		Parcels: dto.ParcelStats{Total: parcels.Total, Pending: parcels.Pending,
			Acknowledged: parcels.Acknowledged, Collected: parcels.Collected, Today: parcels.Today},
		Users: dto.UserStats{Total: users.Total, Residents: users.Residents,
			Guards: users.Guards, Admins: users.Admins},
	}, nil
}

// QuickActions collects the live views shown on the admin landing page:
// last-24h activity, records awaiting a decision, and visitors currently on
// the premises.
func (s *AdminService) QuickActions() (*dto.QuickActions, error) {
	base := func() *gorm.DB {
		return s.db.Preload("Resident").Preload("SecurityGuard")
	}

	var recent []models.VisitorParcel
	err := base().Where("created_at >= ?", time.Now().Add(-24*time.Hour)).
		Order("created_at DESC").Limit(10).Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent activity: %w", err)
	}

	var pending []models.VisitorParcel
	err = base().Where("status IN ?", []workflow.Status{workflow.StatusNew, workflow.StatusReceived}).
		Order("created_at ASC").Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending approvals: %w", err)
	}

	var active []models.VisitorParcel
	err = base().Where("type = ? AND status IN ?", workflow.TypeVisitor,
		[]workflow.Status{workflow.StatusApproved, workflow.StatusEntered}).
		Order("created_at DESC").Find(&active).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active visitors: %w", err)
	}

	return &dto.QuickActions{
		RecentActivities: mapRecords(recent),
		PendingApprovals: mapRecords(pending),
		ActiveVisitors:   mapRecords(active),
	}, nil
}

// periodStart resolves a report period keyword to its inclusive lower bound.
// Unknown periods mean "all time".
func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// Reports builds the daily breakdown, status distribution and top-resident
// activity for the requested window.
func (s *AdminService) Reports(period, recordType string) (*dto.Reports, error) {
	scoped := func(q *gorm.DB) *gorm.DB {
		if start, ok := periodStart(period, time.Now()); ok {
			q = q.Where("visitors_parcels.created_at >= ?", start)
		}
		if workflow.ValidType(workflow.RecordType(recordType)) {
			q = q.Where("visitors_parcels.type = ?", recordType)
		}
		return q
	}

	var daily []dto.DailyStat
	err := scoped(s.db.Model(&models.VisitorParcel{})).
		Select("to_char(created_at, 'YYYY-MM-DD') AS date, type, status, COUNT(*) AS count").
		Group("to_char(created_at, 'YYYY-MM-DD'), type, status").
		Order("date DESC").
		Scan(&daily).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build daily stats: %w", err)
	}

	var byStatus []dto.StatusStat
	err = scoped(s.db.Model(&models.VisitorParcel{})).
		Select("status, type, COUNT(*) AS count").
		Group("status, type").
		Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build status stats: %w", err)
	}

	var byResident []dto.ResidentStat
	err = scoped(s.db.Model(&models.VisitorParcel{})).
		Select(`users.name AS resident_name,
			COUNT(*) AS total_entries,
			SUM(CASE WHEN visitors_parcels.type = 'Visitor' THEN 1 ELSE 0 END) AS visitors,
			SUM(CASE WHEN visitors_parcels.type = 'Parcel' THEN 1 ELSE 0 END) AS parcels`).
		Joins("JOIN users ON users.id = visitors_parcels.resident_id").
		Group("visitors_parcels.resident_id, users.name").
		Order("total_entries DESC").
		Limit(10).
		Scan(&byResident).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build resident stats: %w", err)
	}

	return &dto.Reports{DailyStats: daily, StatusStats: byStatus, ResidentStats: byResident}, nil
}

// Export returns the flattened rows for the requested window, with resident
// and guard identities joined in.
func (s *AdminService) Export(period, recordType string) ([]dto.ExportRow, error) {
	query := s.db.Table("visitors_parcels").
		Select(`visitors_parcels.id,
			visitors_parcels.type,
			visitors_parcels.name,
			visitors_parcels.purpose_description,
			visitors_parcels.status,
			visitors_parcels.notes,
			visitors_parcels.vehicle_details,
			residents.name AS resident_name,
			residents.email AS resident_email,
			guards.name AS security_guard_name,
			to_char(visitors_parcels.created_at, 'YYYY-MM-DD HH24:MI:SS') AS created_at`).
		Joins("JOIN users residents ON residents.id = visitors_parcels.resident_id").
		Joins("JOIN users guards ON guards.id = visitors_parcels.security_guard_id")

	if start, ok := periodStart(period, time.Now()); ok {
		query = query.Where("visitors_parcels.created_at >= ?", start)
	}
	if workflow.ValidType(workflow.RecordType(recordType)) {
		query = query.Where("visitors_parcels.type = ?", recordType)
	}

	var rows []dto.ExportRow
	if err := query.Order("visitors_parcels.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to export records: %w", err)
	}
	return rows, nil
}

// BuildCSV renders export rows as a CSV document.
func BuildCSV(rows []dto.ExportRow) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	headers := []string{"ID", "Type", "Name", "Purpose", "Status", "Notes", "Vehicle", "Resident", "Resident Email", "Security Guard", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ID.String(),
			row.Type,
			row.Name,
			row.PurposeDescription,
			row.Status,
			row.Notes,
			row.VehicleDetails,
			row.ResidentName,
			row.ResidentEmail,
			row.SecurityGuardName,
			row.CreatedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buffer.Bytes(), nil
}

// BulkUpdateStatus routes every id through the same workflow validation as
// a single update. Items that fail do not abort the rest; each gets its own
// verdict.
func (s *AdminService) BulkUpdateStatus(actor *auth.Claims, req *dto.BulkStatusUpdateRequest) *dto.BulkStatusUpdateResponse {
	resp := &dto.BulkStatusUpdateResponse{
		Results: make([]dto.BulkItemResult, 0, len(req.IDs)),
	}

	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, dto.BulkItemResult{Error: "invalid record id"})
			continue
		}

		_, err = s.records.UpdateStatus(actor, id, workflow.Status(req.Status), req.Notes)
		if err != nil {
			resp.Failed++
			resp.Results = append(resp.Results, dto.BulkItemResult{ID: id, Error: bulkErrorMessage(err)})
			continue
		}

		resp.Updated++
		resp.Results = append(resp.Results, dto.BulkItemResult{ID: id, OK: true})
	}

	resp.Message = fmt.Sprintf("%d records updated, %d failed", resp.Updated, resp.Failed)
	return resp
}

func bulkErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return "record not found"
	case errors.Is(err, workflow.ErrInvalidStatus):
		return "status does not exist for this record type"
	case errors.Is(err, workflow.ErrInvalidTransition):
		return "transition not allowed from the current status"
	case errors.Is(err, workflow.ErrNotPermitted):
		return "not permitted"
	default:
		return "internal error"
	}
}
