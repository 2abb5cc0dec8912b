package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAndParse(t *testing.T) {
	now := time.Now()

	raw, err := Build("secret", 42, "admin", now)
	require.NoError(t, err)

	claims, err := Parse("secret", raw)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, now.Add(TokenTTL), claims.ExpiresAt.Time, time.Second)
}

func TestParse_WrongSecret(t *testing.T) {
	raw, err := Build("secret", 42, "user", time.Now())
	require.NoError(t, err)

	_, err = Parse("other", raw)
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	raw, err := Build("secret", 42, "user", time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)

	_, err = Parse("secret", raw)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("secret", "not-a-token")
	assert.Error(t, err)
}
