package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gatewatch/vpms-backend/internal/workflow"
)

// VisitorParcel is one visitor-entry or parcel-delivery event logged at the
// gate. Type is immutable after creation and Status always belongs to the
// vocabulary of that type. Records are hard-deleted (admin only), never
// soft-deleted.
type VisitorParcel struct {
	ID                 uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ResidentID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"resident_id"`
	SecurityGuardID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"security_guard_id"`
	Type               workflow.RecordType `gorm:"size:10;not null" json:"type"`
	Name               string              `gorm:"not null;size:255" json:"name"`
	PurposeDescription string              `gorm:"not null;type:text" json:"purpose_description"`
	Media              string              `gorm:"type:text" json:"media,omitempty"`
	VehicleDetails     string              `gorm:"size:255" json:"vehicle_details,omitempty"`
	Status             workflow.Status     `gorm:"size:30;not null;index" json:"status"`
	Notes              string              `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`

	Resident      *User `gorm:"foreignKey:ResidentID" json:"-"`
	SecurityGuard *User `gorm:"foreignKey:SecurityGuardID" json:"-"`
}

func (VisitorParcel) TableName() string {
	return "visitors_parcels"
}
