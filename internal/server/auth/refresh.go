package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/timex"
)

// refreshTokenBytes is the entropy drawn per token. 64 bytes makes
// collisions cryptographically negligible; the store's unique constraint
// is only a backstop.
const refreshTokenBytes = 64

// RefreshTokenGenerator produces opaque refresh-token strings together
// with their expiry timestamp.
type RefreshTokenGenerator struct {
	ttl   time.Duration
	clock timex.Clock
}

func NewRefreshTokenGenerator(ttl time.Duration, clock timex.Clock) *RefreshTokenGenerator {
	return &RefreshTokenGenerator{ttl: ttl, clock: clock}
}

// Generate draws 64 random bytes, base64-encodes them as the token
// string, and computes the expiry as now plus the configured TTL.
func (g *RefreshTokenGenerator) Generate() (string, time.Time, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, fmt.Errorf("generating refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), g.clock.Now().Add(g.ttl), nil
}
