package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRefreshToken_DerivedState(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	revoked := now.Add(-time.Hour)

	tests := []struct {
		name    string
		token   RefreshToken
		expired bool
		revoked bool
		active  bool
	}{
		{
			name:   "active",
			token:  RefreshToken{ExpiresAt: now.Add(time.Hour)},
			active: true,
		},
		{
			name:    "expiry boundary is inclusive",
			token:   RefreshToken{ExpiresAt: now},
			expired: true,
		},
		{
			name:    "past expiry",
			token:   RefreshToken{ExpiresAt: now.Add(-time.Second)},
			expired: true,
		},
		{
			name:    "revoked but not expired",
			token:   RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked},
			revoked: true,
		},
		{
			name:    "revoked and expired",
			token:   RefreshToken{ExpiresAt: now.Add(-time.Hour), RevokedAt: &revoked},
			expired: true,
			revoked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expired, tt.token.Expired(now))
			require.Equal(t, tt.revoked, tt.token.Revoked())
			require.Equal(t, tt.active, tt.token.Active(now))
		})
	}
}
