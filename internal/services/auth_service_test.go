package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/config"
	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4,
	}
}

func userColumns() []string {
	return []string{"id", "name", "email", "password", "role", "contact_info", "created_at"}
}

func TestAuthService_Register_Validation(t *testing.T) {
	t.Parallel()

	s := NewAuthService(nil, testConfig())

	_, err := s.Register(&dto.RegisterRequest{
		Name:        "A",
		Email:       "not-an-email",
		Password:    "short",
		Role:        "Janitor",
		ContactInfo: "123456789012345678901",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	// Every failing field is reported at once, before any mutation.
	assert.ElementsMatch(t, []string{"name", "email", "password", "role", "contact_info"}, fields)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(uuid.New().String(), "Alice", "alice@x.com", "hash", "Resident", "", time.Now()))

	_, err := s.Register(&dto.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@X.com",
		Password: "Passw0rd1",
		Role:     "Resident",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewAuthService(db, testConfig())

	hash, err := auth.HashPassword("Passw0rd1", 4)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(uuid.New().String(), "Alice", "alice@x.com", hash, "Resident", "", time.Now()))

	_, err = s.Login(&dto.LoginRequest{Email: "alice@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	s := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := s.Login(&dto.LoginRequest{Email: "ghost@x.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	cfg := testConfig()
	s := NewAuthService(db, cfg)

	userID := uuid.New()
	hash, err := auth.HashPassword("Passw0rd1", 4)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(userID.String(), "Bob", "bob@x.com", hash, "Security Guard", "", time.Now()))

	resp, err := s.Login(&dto.LoginRequest{Email: "bob@x.com", Password: "Passw0rd1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, userID, resp.User.ID)
	assert.Equal(t, workflow.RoleSecurityGuard, resp.User.Role)

	// The issued token verifies and carries the stored identity.
	claims, err := auth.ParseToken(resp.Token, []byte(cfg.JWTSecret))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "bob@x.com", claims.Email)
	assert.Equal(t, workflow.RoleSecurityGuard, claims.Role)
}
