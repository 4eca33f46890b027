package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", h)
	require.True(t, strings.HasPrefix(h, "$2a$10$"))
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1")
	require.NoError(t, err)

	require.True(t, VerifyPassword("secret1", h))
	require.False(t, VerifyPassword("wrong", h))
}

func TestVerifyPassword_EmptyHash(t *testing.T) {
	t.Parallel()

	// Accounts provisioned via Google carry no password credential.
	require.False(t, VerifyPassword("", ""))
	require.False(t, VerifyPassword("anything", ""))
}

func TestHashPasswordWithCost_OutOfRange(t *testing.T) {
	t.Parallel()

	h, err := HashPasswordWithCost("secret1", 99)
	require.NoError(t, err)
	require.True(t, VerifyPassword("secret1", h))
}
