package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/models"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

var ErrRecordNotFound = errors.New("record not found")

// Result-set bounds, newest first.
const (
	residentListLimit = 100
	pendingListLimit  = 50
	adminListLimit    = 1000
)

type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

// Create logs a new visitor or parcel record. The acting guard becomes
// security_guard_id; the initial status is derived from the type.
func (s *RecordService) Create(actor *auth.Claims, req *dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	residentID, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	recordType := workflow.RecordType(req.Type)
	initial, err := workflow.InitialStatus(recordType)
	if err != nil {
		return nil, err
	}

	record := models.VisitorParcel{
		ResidentID:         residentID,
		SecurityGuardID:    actor.UserID,
		Type:               recordType,
		Name:               req.Name,
		PurposeDescription: req.PurposeDescription,
		Media:              req.Media,
		VehicleDetails:     req.VehicleDetails,
		Status:             initial,
		Notes:              req.Notes,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return s.Get(record.ID)
}

// validateCreate checks every field before any mutation and resolves the
// resident reference. The target must exist and actually hold the Resident
// role.
func (s *RecordService) validateCreate(req *dto.CreateRecordRequest) (uuid.UUID, error) {
	var fe fieldErrors
	var residentID uuid.UUID

	if req.ResidentID == "" {
		fe.add("resident_id", "Valid resident ID is required")
	} else if id, err := uuid.Parse(req.ResidentID); err != nil {
		fe.add("resident_id", "Valid resident ID is required")
	} else {
		residentID = id
	}

	if !workflow.ValidType(workflow.RecordType(req.Type)) {
		fe.add("type", "Type must be Visitor or Parcel")
	}
	if req.Name == "" {
		fe.add("name", "Name is required")
	}
	if req.PurposeDescription == "" {
		fe.add("purpose_description", "Purpose/Description is required")
	}

	if residentID != uuid.Nil {
		var resident models.User
		err := s.db.First(&resident, "id = ?", residentID).Error
		if err != nil || resident.Role != workflow.RoleResident {
			fe.add("resident_id", "Resident not found")
		}
	}

	return residentID, fe.err()
}

func (s *RecordService) Get(id uuid.UUID) (*dto.RecordResponse, error) {
	var record models.VisitorParcel
	err := s.db.Preload("Resident").Preload("SecurityGuard").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch record: %w", err)
	}
	resp := mapRecord(&record)
	return &resp, nil
}

// ListByResident returns a resident's records, optionally narrowed by type.
func (s *RecordService) ListByResident(residentID uuid.UUID, recordType string) ([]dto.RecordResponse, error) {
	query := s.db.Preload("Resident").Preload("SecurityGuard").
		Where("resident_id = ?", residentID)
	if workflow.ValidType(workflow.RecordType(recordType)) {
		query = query.Where("type = ?", recordType)
	}

	var records []models.VisitorParcel
	if err := query.Order("created_at DESC").Limit(residentListLimit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return mapRecords(records), nil
}

// PendingApprovals returns the resident's Visitor records still awaiting a
// decision.
func (s *RecordService) PendingApprovals(residentID uuid.UUID) ([]dto.RecordResponse, error) {
	var records []models.VisitorParcel
	err := s.db.Preload("Resident").Preload("SecurityGuard").
		Where("resident_id = ? AND type = ? AND status = ?", residentID, workflow.TypeVisitor, workflow.StatusNew).
		Order("created_at DESC").Limit(pendingListLimit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	return mapRecords(records), nil
}

// List returns filtered records for admin/guard views plus the unbounded
// match count.
func (s *RecordService) List(filters dto.RecordFilters) ([]dto.RecordResponse, int64, error) {
	query := s.db.Model(&models.VisitorParcel{})

	if workflow.ValidType(workflow.RecordType(filters.Type)) {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ResidentID != "" {
		if id, err := uuid.Parse(filters.ResidentID); err == nil {
			query = query.Where("resident_id = ?", id)
		}
	}
	if from, err := time.Parse("2006-01-02", filters.DateFrom); err == nil {
		query = query.Where("created_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", filters.DateTo); err == nil {
		query = query.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records: %w", err)
	}

	var records []models.VisitorParcel
	err := query.Preload("Resident").Preload("SecurityGuard").
		Order("created_at DESC").Limit(adminListLimit).
		Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records: %w", err)
	}

	return mapRecords(records), total, nil
}

// UpdateStatus applies one workflow transition. The row is locked for the
// duration of the transaction so concurrent updates serialize; validation
// and write happen against the same snapshot. Either the transition is
// rejected with no mutation, or status, notes and updated_at change together.
func (s *RecordService) UpdateStatus(actor *auth.Claims, id uuid.UUID, newStatus workflow.Status, notes string) (*dto.RecordResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var record models.VisitorParcel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			return fmt.Errorf("failed to fetch record: %w", err)
		}

		wfActor := workflow.Actor{ID: actor.UserID, Role: actor.Role}
		if err := workflow.Validate(wfActor, record.Type, record.ResidentID, record.Status, newStatus); err != nil {
			return err
		}

		return tx.Model(&record).Updates(map[string]interface{}{
			"status":     newStatus,
			"notes":      notes,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(id)
}

// Delete hard-deletes a record. Missing ids report false without error.
func (s *RecordService) Delete(id uuid.UUID) (bool, error) {
	result := s.db.Delete(&models.VisitorParcel{}, "id = ?", id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete record: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func mapRecord(r *models.VisitorParcel) dto.RecordResponse {
	resp := dto.RecordResponse{
		ID:                 r.ID,
		ResidentID:         r.ResidentID,
		SecurityGuardID:    r.SecurityGuardID,
		Type:               r.Type,
		Name:               r.Name,
		PurposeDescription: r.PurposeDescription,
		Media:              r.Media,
		VehicleDetails:     r.VehicleDetails,
		Status:             r.Status,
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.Resident != nil {
		resp.ResidentName = r.Resident.Name
	}
	if r.SecurityGuard != nil {
		resp.SecurityGuardName = r.SecurityGuard.Name
	}
	return resp
}

func mapRecords(records []models.VisitorParcel) []dto.RecordResponse {
	out := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		out = append(out, mapRecord(&records[i]))
	}
	return out
}
