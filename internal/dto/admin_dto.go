package dto

import "github.com/google/uuid"

type VisitorStats struct {
	Total     int64 `json:"total_visitors"`
	Pending   int64 `json:"pending_visitors"`
	Active    int64 `json:"active_visitors"`
	Completed int64 `json:"completed_visitors"`
	Today     int64 `json:"today_visitors"`
}

type ParcelStats struct {
	Total        int64 `json:"total_parcels"`
	Pending      int64 `json:"pending_parcels"`
	Acknowledged int64 `json:"acknowledged_parcels"`
	Collected    int64 `json:"collected_parcels"`
	Today        int64 `json:"today_parcels"`
}

type UserStats struct {
	Total     int64 `json:"total_users"`
	Residents int64 `json:"total_residents"`
	Guards    int64 `json:"total_guards"`
	Admins    int64 `json:"total_admins"`
}

type DashboardStats struct {
	Visitors VisitorStats `json:"visitors"`
	Parcels  ParcelStats  `json:"parcels"`
	Users    UserStats    `json:"users"`
}

type QuickActions struct {
	RecentActivities []RecordResponse `json:"recent_activities"`
	PendingApprovals []RecordResponse `json:"pending_approvals"`
	ActiveVisitors   []RecordResponse `json:"active_visitors"`
}

type DailyStat struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type StatusStat struct {
	Status string `json:"status"`
	Type   string `json:"type"`
	Count  int64  `json:"count"`
}

type ResidentStat struct {
	ResidentName string `json:"resident_name"`
	TotalEntries int64  `json:"total_entries"`
	Visitors     int64  `json:"visitors"`
	Parcels      int64  `json:"parcels"`
}

type Reports struct {
	DailyStats    []DailyStat    `json:"daily_stats"`
	StatusStats   []StatusStat   `json:"status_stats"`
	ResidentStats []ResidentStat `json:"resident_stats"`
}

type BulkStatusUpdateRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
	Notes  string   `json:"notes"`
}

type BulkItemResult struct {
	ID    uuid.UUID `json:"id"`
	OK    bool      `json:"ok"`
	Error string    `json:"error,omitempty"`
}

type BulkStatusUpdateResponse struct {
	Message string           `json:"message"`
	Updated int              `json:"updated"`
	Failed  int              `json:"failed"`
	Results []BulkItemResult `json:"results"`
}

// ExportRow is one flattened record in an admin export, including the joined
// resident and guard identities.
type ExportRow struct {
	ID                 uuid.UUID `json:"id"`
	Type               string    `json:"type"`
	Name               string    `json:"name"`
	PurposeDescription string    `json:"purpose_description"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	VehicleDetails     string    `json:"vehicle_details,omitempty"`
	ResidentName       string    `json:"resident_name"`
	ResidentEmail      string    `json:"resident_email"`
	SecurityGuardName  string    `json:"security_guard_name"`
	CreatedAt          string    `json:"created_at"`
}

type ExportResponse struct {
	Data []ExportRow `json:"data"`
}
