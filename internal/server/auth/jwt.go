// Package auth provides the credential primitives the session service
// composes: access-token signing (JWT/HS256), password hashing (bcrypt),
// and opaque refresh-token generation.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/config"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/models"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/timex"
)

// Claims is the access-token claim set: the registered claims (sub, jti,
// iat, exp, iss, aud) plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenSigner mints and validates short-lived HS256 access tokens.
// Access tokens are never persisted; signature plus expiry make them
// self-validating.
type TokenSigner struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	clock    timex.Clock
}

// NewTokenSigner builds a signer from config. It fails when the secret is
// empty so a misconfigured server cannot start and then break on the
// first issued token.
func NewTokenSigner(cfg *config.Config, clock timex.Clock) (*TokenSigner, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("token signer: secret key is required")
	}
	return &TokenSigner{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.AccessTokenTTL,
		clock:    clock,
	}, nil
}

// IssueAccessToken signs a compact token for the user: subject is the
// user id, jti is a fresh random id, expiry is now plus the configured TTL.
func (s *TokenSigner) IssueAccessToken(user *models.User) (string, error) {
	now := s.clock.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: user.Email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, signing method, issuer, audience,
// and expiry, and returns the claims. There is no clock-skew leeway: a
// token is invalid the instant it passes its expiry.
func (s *TokenSigner) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid access token")
	}

	return claims, nil
}

// UserID returns the subject claim as the numeric user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
