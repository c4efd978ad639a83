package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	userID, businessID := uuid.New(), uuid.New()

	token, err := m.GenerateAccessToken(userID, businessID, "สมชาย", []string{"sales"})
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, businessID, claims.BusinessID)
	assert.Equal(t, "สมชาย", claims.Name)
	assert.Equal(t, []string{"sales"}, claims.Roles)
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, err := NewJWTManager("other", time.Hour).GenerateAccessToken(uuid.New(), uuid.New(), "", nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err, "wrong key")

	token, err = NewJWTManager("secret", -time.Minute).GenerateAccessToken(uuid.New(), uuid.New(), "", nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err, "expired")

	token, err = m.GenerateAccessToken(uuid.New(), uuid.Nil, "", nil)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err, "no business")
}
