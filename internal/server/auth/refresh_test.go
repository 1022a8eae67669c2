package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshTokenGenerator_Generate(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	g := NewRefreshTokenGenerator(7*24*time.Hour, clock)

	token, expiresAt, err := g.Generate()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	require.Len(t, raw, 64)

	require.Equal(t, clock.now.Add(7*24*time.Hour), expiresAt)
}

func TestRefreshTokenGenerator_TokensAreDistinct(t *testing.T) {
	g := NewRefreshTokenGenerator(time.Hour, &fakeClock{now: time.Now()})

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, _, err := g.Generate()
		require.NoError(t, err)
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = struct{}{}
	}
}
