package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

func recordColumns() []string {
	return []string{
		"id", "resident_id", "security_guard_id", "type", "name",
		"purpose_description", "media", "vehicle_details", "status", "notes",
		"created_at", "updated_at",
	}
}

func recordRow(id, residentID uuid.UUID, typ workflow.RecordType, status workflow.Status) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(recordColumns()).AddRow(
		id.String(), residentID.String(), uuid.New().String(), string(typ),
		"Carl", "Delivery", "", "", string(status), "", now, now,
	)
}

func TestRecordService_ValidateCreate_AllFields(t *testing.T) {
	t.Parallel()

	s := NewRecordService(nil)

	// Empty resident id means no DB lookup happens; every field failure is
	// collected in one pass.
	_, err := s.validateCreate(&dto.CreateRecordRequest{
		ResidentID:         "",
		Type:               "Pigeon",
		Name:               "",
		PurposeDescription: "",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"resident_id", "type", "name", "purpose_description"}, fields)
}

func TestRecordService_ValidateCreate_BadUUID(t *testing.T) {
	t.Parallel()

	s := NewRecordService(nil)

	_, err := s.validateCreate(&dto.CreateRecordRequest{
		ResidentID:         "42",
		Type:               "Visitor",
		Name:               "Carl",
		PurposeDescription: "Delivery",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 1)
	assert.Equal(t, "resident_id", ve.Fields[0].Field)
}

func TestRecordService_Get_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	mock.ExpectQuery(`SELECT \* FROM "visitors_parcels" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(recordColumns()))

	_, err := s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_UpdateStatus_InvalidTransition(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	recordID := uuid.New()
	residentID := uuid.New()
	guard := &auth.Claims{UserID: uuid.New(), Role: workflow.RoleSecurityGuard}

	// The row is locked for the duration of the transaction; a rejected
	// transition rolls back with no UPDATE issued.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "visitors_parcels" WHERE id = \$1(.|\n)*FOR UPDATE`).
		WillReturnRows(recordRow(recordID, residentID, workflow.TypeVisitor, workflow.StatusExited))
	mock.ExpectRollback()

	_, err := s.UpdateStatus(guard, recordID, workflow.StatusEntered, "")
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordService_UpdateStatus_ForbiddenForForeignResident(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	recordID := uuid.New()
	owner := uuid.New()
	stranger := &auth.Claims{UserID: uuid.New(), Role: workflow.RoleResident}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "visitors_parcels" WHERE id = \$1(.|\n)*FOR UPDATE`).
		WillReturnRows(recordRow(recordID, owner, workflow.TypeVisitor, workflow.StatusNew))
	mock.ExpectRollback()

	_, err := s.UpdateStatus(stranger, recordID, workflow.StatusApproved, "")
	assert.ErrorIs(t, err, workflow.ErrNotPermitted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordService_UpdateStatus_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	guard := &auth.Claims{UserID: uuid.New(), Role: workflow.RoleSecurityGuard}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "visitors_parcels" WHERE id = \$1(.|\n)*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(recordColumns()))
	mock.ExpectRollback()

	_, err := s.UpdateStatus(guard, uuid.New(), workflow.StatusApproved, "")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_Delete(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	mock.ExpectExec(`DELETE FROM "visitors_parcels" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := s.Delete(uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRecordService_Delete_MissingIsNotAnError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewRecordService(db)

	mock.ExpectExec(`DELETE FROM "visitors_parcels" WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.Delete(uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}
