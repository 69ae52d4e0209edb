package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Passw0rd1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", hash)

	assert.True(t, CheckPassword("Passw0rd1", hash))
	assert.False(t, CheckPassword("passw0rd1", hash))
	assert.False(t, CheckPassword("", hash))
}

func TestHashPassword_CostFallback(t *testing.T) {
	t.Parallel()

	// Out-of-range costs fall back to the library default instead of failing.
	hash, err := HashPassword("Passw0rd1", 99)
	require.NoError(t, err)
	assert.True(t, CheckPassword("Passw0rd1", hash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("Passw0rd1", 4)
	require.NoError(t, err)
	h2, err := HashPassword("Passw0rd1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
