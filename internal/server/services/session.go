// Package services contains the server-side business logic. This file
// implements SessionService: user registration and login, access-token
// minting, and refresh-token issuance, rotation, and revocation with
// reuse detection.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/common"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/dbx"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/logging"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/auth"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/config"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/models"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/repositories/repomanager"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/timex"
)

// AuthResponse is returned by every operation that issues credentials:
// one short-lived access token and one fresh refresh token, always
// together.
type AuthResponse struct {
	AccessToken  string
	UserID       int64
	Email        string
	RefreshToken string
}

// SessionService orchestrates the credential protocol. Each operation is
// a request-scoped unit of work: single-statement writes run in
// autocommit mode, multi-write steps (rotation, issuing after a
// revocation) share one transaction via dbx.WithTx. No state is retained
// between calls.
//
// Per refresh token the state machine is Active -> Revoked (terminal) or
// Active -> Expired (terminal, time-driven). No transition returns a
// token to Active.
type SessionService struct {
	db      *sql.DB
	rm      repomanager.RepositoryManager
	hasher  auth.PasswordHasher
	signer  *auth.TokenSigner
	refresh *auth.RefreshTokenGenerator
	clock   timex.Clock
	log     logging.Logger

	minPasswordLength int
}

func NewSessionService(
	db *sql.DB,
	rm repomanager.RepositoryManager,
	hasher auth.PasswordHasher,
	signer *auth.TokenSigner,
	refresh *auth.RefreshTokenGenerator,
	clock timex.Clock,
	log logging.Logger,
	cfg *config.Config,
) *SessionService {
	return &SessionService{
		db:                db,
		rm:                rm,
		hasher:            hasher,
		signer:            signer,
		refresh:           refresh,
		clock:             clock,
		log:               log.With("component", "sessions"),
		minPasswordLength: cfg.MinPasswordLength,
	}
}

// Register creates a user and issues the first token pair. The user row
// is committed on its own so the generated id exists before the refresh
// token referencing it is inserted.
func (s *SessionService) Register(ctx context.Context, email, password, confirmPassword string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	if verr := validateRegistration(email, password, confirmPassword, s.minPasswordLength); verr != nil {
		return nil, verr
	}

	usersRepo := s.rm.Users(s.db)

	_, err := usersRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.log.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user, err := usersRepo.Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		RegisteredAt: s.clock.Now(),
	})
	if err != nil {
		// Lost a race with a concurrent registration for the same email.
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorEmailTaken
		}
		s.log.Error(ctx, "user insert failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	resp, err := s.issueTokenPair(ctx, s.db, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return resp, nil
}

// Login verifies credentials and issues a fresh token pair. An unknown
// email and a wrong password both fail with ErrInvalidCredentials: the
// caller must not be able to tell the two apart.
func (s *SessionService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	if verr := validateLogin(email, password); verr != nil {
		return nil, verr
	}

	user, err := s.rm.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		s.log.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	resp, err := s.issueTokenPair(ctx, s.db, user)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID)
	return resp, nil
}

// RefreshToken rotates a refresh token: the presented token is consumed
// (revoked) and a new pair is issued atomically.
//
// Presenting an already-revoked token is treated as a reuse signal (a
// stolen token replayed after its legitimate rotation) and every active
// token of that user is revoked in response.
func (s *SessionService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, common.ErrInvalidToken
	}

	stored, err := s.rm.RefreshTokens(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.log.Error(ctx, "refresh token lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	now := s.clock.Now()

	if stored.Revoked() {
		s.log.Warn(ctx, "revoked refresh token replayed, revoking all active tokens", "user_id", stored.UserID)
		revoked, err := s.rm.RefreshTokens(s.db).RevokeAllActiveByUser(ctx, stored.UserID, now)
		if err != nil {
			s.log.Error(ctx, "cascade revocation failed", "user_id", stored.UserID, "error", err.Error())
			return nil, common.ErrorInternal
		}
		s.log.Info(ctx, "cascade revocation complete", "user_id", stored.UserID, "revoked", revoked)
		return nil, common.ErrTokenRevoked
	}

	if stored.Expired(now) {
		return nil, common.ErrTokenExpired
	}

	var resp *AuthResponse
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.RefreshTokens(tx).Revoke(ctx, stored.ID, now); err != nil {
			return err
		}
		var issueErr error
		resp, issueErr = s.issueTokenPair(ctx, tx, stored.User)
		return issueErr
	})
	if err != nil {
		// A concurrent refresh consumed the row between our read and the
		// conditional update; the loser observes it as revoked.
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrTokenRevoked
		}
		if errors.Is(err, common.ErrorInternal) {
			return nil, common.ErrorInternal
		}
		s.log.Error(ctx, "token rotation failed", "user_id", stored.UserID, "error", err.Error())
		return nil, common.ErrorInternal
	}

	return resp, nil
}

// RevokeToken terminates a session (logout). No new tokens are issued.
// Revoking an absent or already-inactive token is reported as an error,
// not an idempotent success, matching the established API contract.
func (s *SessionService) RevokeToken(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return common.ErrInvalidToken
	}

	stored, err := s.rm.RefreshTokens(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		s.log.Error(ctx, "refresh token lookup failed", "error", err.Error())
		return common.ErrorInternal
	}

	now := s.clock.Now()
	if !stored.Active(now) {
		return common.ErrInvalidToken
	}

	if err := s.rm.RefreshTokens(s.db).Revoke(ctx, stored.ID, now); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Revoked concurrently since the read.
			return common.ErrInvalidToken
		}
		s.log.Error(ctx, "token revocation failed", "user_id", stored.UserID, "error", err.Error())
		return common.ErrorInternal
	}

	s.log.Info(ctx, "refresh token revoked", "user_id", stored.UserID)
	return nil
}

// UserIDFromRefreshToken resolves the owner of a refresh token without
// mutating anything. Unknown or empty tokens yield common.ErrorNotFound.
func (s *SessionService) UserIDFromRefreshToken(ctx context.Context, refreshToken string) (int64, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return 0, common.ErrorNotFound
	}

	stored, err := s.rm.RefreshTokens(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorNotFound
		}
		s.log.Error(ctx, "refresh token lookup failed", "error", err.Error())
		return 0, common.ErrorInternal
	}

	return stored.UserID, nil
}

// ActiveSessions lists the user's refresh tokens that are still usable,
// i.e. not revoked and not yet expired.
func (s *SessionService) ActiveSessions(ctx context.Context, userID int64) ([]*models.RefreshToken, error) {
	tokens, err := s.rm.RefreshTokens(s.db).FindActiveByUser(ctx, userID, s.clock.Now())
	if err != nil {
		s.log.Error(ctx, "active session lookup failed", "user_id", userID, "error", err.Error())
		return nil, common.ErrorInternal
	}
	return tokens, nil
}

// issueTokenPair mints one access token and one refresh token for the
// user and stages the refresh-token insert against db. The access token
// is never persisted.
func (s *SessionService) issueTokenPair(ctx context.Context, db dbx.DBTX, user *models.User) (*AuthResponse, error) {
	accessToken, err := s.signer.IssueAccessToken(user)
	if err != nil {
		s.log.Error(ctx, "access token issuance failed", "user_id", user.ID, "error", err.Error())
		return nil, common.ErrorInternal
	}

	refreshToken, expiresAt, err := s.refresh.Generate()
	if err != nil {
		s.log.Error(ctx, "refresh token generation failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	_, err = s.rm.RefreshTokens(db).Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		CreatedAt: s.clock.Now(),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.log.Error(ctx, "refresh token insert failed", "user_id", user.ID, "error", err.Error())
		return nil, common.ErrorInternal
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		UserID:       user.ID,
		Email:        user.Email,
		RefreshToken: refreshToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
