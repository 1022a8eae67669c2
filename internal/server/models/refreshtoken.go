package models

import "time"

// RefreshToken is one issued session-continuation credential. The token
// string is opaque and high-entropy; its only external meaning is that a
// row with this value exists.
//
// A token's state is derived from its timestamps, never stored: revoked
// rows keep their RevokedAt forever so replays can be detected. Rows are
// never deleted.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time

	// User is the owning user, populated by lookups that join it.
	User *User
}

// Expired reports whether the token has passed its expiry. The boundary
// is inclusive: a token whose ExpiresAt equals now is already expired.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Revoked reports whether the token was explicitly revoked.
func (t *RefreshToken) Revoked() bool {
	return t.RevokedAt != nil
}

// Active reports whether the token may still be redeemed.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked() && !t.Expired(now)
}
