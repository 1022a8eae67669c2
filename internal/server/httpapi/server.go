// Package httpapi exposes the session operations over an HTTP JSON API
// and authenticates protected routes with the access-token signer.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/logging"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/auth"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/models"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/services"
)

// Sessions is the surface of the session service the API depends on.
type Sessions interface {
	Register(ctx context.Context, email, password, confirmPassword string) (*services.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
	RevokeToken(ctx context.Context, refreshToken string) error
	ActiveSessions(ctx context.Context, userID int64) ([]*models.RefreshToken, error)
}

type Server struct {
	addr     string
	logger   logging.Logger
	sessions Sessions
	signer   *auth.TokenSigner
	srv      *http.Server
}

func NewServer(addr string, logger logging.Logger, sessions Sessions, signer *auth.TokenSigner) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger.With("component", "httpapi"),
		sessions: sessions,
		signer:   signer,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	mux.Handle("POST /api/auth/revoke", s.requireAccessToken(http.HandlerFunc(s.handleRevoke)))
	mux.Handle("GET /api/auth/me", s.requireAccessToken(http.HandlerFunc(s.handleMe)))
	mux.Handle("GET /api/auth/sessions", s.requireAccessToken(http.HandlerFunc(s.handleSessions)))

	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	}
}
