package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "ana@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	token, err := NewManager("one", time.Hour).GenerateAccessToken("u", "e", "user")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("secret", time.Nanosecond)
	token, err := m.GenerateAccessToken("u", "e", "user")
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
