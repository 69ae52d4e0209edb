package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gatewatch/vpms-backend/internal/workflow"
)

// User is a registered account: a resident, a security guard, or an admin.
// The role is fixed at registration; there is no role-change endpoint.
type User struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string        `gorm:"not null;size:100" json:"name"`
	Email       string        `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string        `gorm:"not null" json:"-"`
	Role        workflow.Role `gorm:"size:20;not null" json:"role"`
	ContactInfo string        `gorm:"size:20" json:"contact_info,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
