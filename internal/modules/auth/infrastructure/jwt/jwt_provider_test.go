package jwt_test

import (
	"testing"
	"time"

	authjwt "github.com/aigerim-zh/kshop/internal/modules/auth/infrastructure/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := authjwt.GenerateToken("test-secret", time.Hour, userID, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authjwt.ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := authjwt.GenerateToken("secret-a", time.Hour, uuid.New(), false)
	require.NoError(t, err)

	claims, err := authjwt.ValidateToken(token, "secret-b")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	token, err := authjwt.GenerateToken("test-secret", -time.Minute, uuid.New(), false)
	require.NoError(t, err)

	claims, err := authjwt.ValidateToken(token, "test-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	claims, err := authjwt.ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
