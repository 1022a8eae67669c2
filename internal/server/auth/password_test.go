package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)

	require.True(t, h.Verify("secret1", hash))
	require.False(t, h.Verify("secret2", hash))
	require.False(t, h.Verify("", hash))
}

func TestBcryptHasher_SaltsPerHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	require.NotEqual(t, first, second, "each hash embeds its own salt")
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	h := NewBcryptHasher(1000)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	require.True(t, h.Verify("secret1", hash))
}
