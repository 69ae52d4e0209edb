package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatewatch/vpms-backend/internal/workflow"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	claims := Claims{
		UserID: uuid.New(),
		Email:  "alice@x.com",
		Role:   workflow.RoleResident,
	}

	tok, err := GenerateToken(claims, secret, time.Hour)
	require.NoError(t, err)

	got, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.Email, got.Email)
	assert.Equal(t, claims.Role, got.Role)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(Claims{
		UserID: uuid.New(),
		Email:  "bob@x.com",
		Role:   workflow.RoleSecurityGuard,
	}, secret, -1*time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(Claims{
		UserID: uuid.New(),
		Email:  "bob@x.com",
		Role:   workflow.RoleAdmin,
	}, []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseToken_UnknownRole(t *testing.T) {
	t.Parallel()

	// A token whose role claim is outside the known set must not verify.
	secret := []byte("secret")
	tok, err := GenerateToken(Claims{
		UserID: uuid.New(),
		Email:  "eve@x.com",
		Role:   workflow.Role("Superuser"),
	}, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
