package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/gatewatch/vpms-backend/internal/workflow"
)

type CreateRecordRequest struct {
	ResidentID         string `json:"resident_id"`
	Type               string `json:"type"`
	Name               string `json:"name"`
	PurposeDescription string `json:"purpose_description"`
	VehicleDetails     string `json:"vehicle_details"`
	Notes              string `json:"notes"`
	Media              string `json:"media"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type RecordResponse struct {
	ID                 uuid.UUID           `json:"id"`
	ResidentID         uuid.UUID           `json:"resident_id"`
	SecurityGuardID    uuid.UUID           `json:"security_guard_id"`
	Type               workflow.RecordType `json:"type"`
	Name               string              `json:"name"`
	PurposeDescription string              `json:"purpose_description"`
	Media              string              `json:"media,omitempty"`
	VehicleDetails     string              `json:"vehicle_details,omitempty"`
	Status             workflow.Status     `json:"status"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	ResidentName       string              `json:"resident_name,omitempty"`
	SecurityGuardName  string              `json:"security_guard_name,omitempty"`
}

type RecordData struct {
	Message string          `json:"message,omitempty"`
	Data    *RecordResponse `json:"data"`
}

type RecordList struct {
	Data []RecordResponse `json:"data"`
}

type RecordPage struct {
	Data  []RecordResponse `json:"data"`
	Total int64            `json:"total"`
}

// RecordFilters narrows admin/guard listing queries. Zero values mean "no
// filter"; dates are inclusive day bounds.
type RecordFilters struct {
	Type       string
	Status     string
	ResidentID string
	DateFrom   string
	DateTo     string
}
