package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

func TestHashPassword(t *testing.T) {
	hash, err := helpers.HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, helpers.CompareHashAndPassword(hash, "hunter22"))
	require.False(t, helpers.CompareHashAndPassword(hash, "hunter23"))
}

func TestCompareMalformedHash(t *testing.T) {
	require.False(t, helpers.CompareHashAndPassword("not-a-bcrypt-hash", "hunter22"))
}
