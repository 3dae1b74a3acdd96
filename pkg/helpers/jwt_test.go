package helpers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

func TestJWTRoundtrip(t *testing.T) {
	m := helpers.NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
}

func TestJWTExpiredToken(t *testing.T) {
	m := helpers.NewJWTManager("secret", -time.Minute)

	token, _, err := m.Generate("user-123")
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := helpers.NewJWTManager("secret-a", time.Hour).Generate("user-123")
	require.NoError(t, err)

	_, err = helpers.NewJWTManager("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestJWTGarbageToken(t *testing.T) {
	m := helpers.NewJWTManager("secret", time.Hour)
	_, err := m.Parse("not.a.jwt")
	require.Error(t, err)
}
