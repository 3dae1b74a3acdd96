package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dforero/ecobarrio-api/pkg/helpers"
)

func TestGenerateOpaqueToken(t *testing.T) {
	a, err := helpers.GenerateOpaqueToken(32)
	require.NoError(t, err)
	b, err := helpers.GenerateOpaqueToken(32)
	require.NoError(t, err)

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	require.Equal(t, helpers.HashToken("abc"), helpers.HashToken("abc"))
	require.NotEqual(t, helpers.HashToken("abc"), helpers.HashToken("abd"))
	require.Len(t, helpers.HashToken("abc"), 64) // sha256 hex
}
