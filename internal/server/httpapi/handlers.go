package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/common"
	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/services"
)

type registerRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
}

// errorResponse is the failure envelope: a short title plus the full
// list of error messages. Internal detail never appears here.
type errorResponse struct {
	Title  string   `json:"title"`
	Errors []string `json:"errors"`
}

type meResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// sessionInfo describes one active session. The token value itself is a
// secret and is never echoed back.
type sessionInfo struct {
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionsResponse struct {
	Sessions []sessionInfo `json:"sessions"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.sessions.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toAuthResponse(resp))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toAuthResponse(resp))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.sessions.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, toAuthResponse(resp))
}

func (s *Server) handleRevoke(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.sessions.RevokeToken(r.Context(), req.RefreshToken); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.writeJSON(w, r, http.StatusUnauthorized, errorResponse{Title: "Unauthorized", Errors: []string{"missing credentials"}})
		return
	}

	s.writeJSON(w, r, http.StatusOK, meResponse{UserID: claims.Subject, Email: claims.Email})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		s.unauthorized(w, r)
		return
	}
	userID, err := claims.UserID()
	if err != nil {
		s.unauthorized(w, r)
		return
	}

	tokens, err := s.sessions.ActiveSessions(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	infos := make([]sessionInfo, 0, len(tokens))
	for _, t := range tokens {
		infos = append(infos, sessionInfo{CreatedAt: t.CreatedAt, ExpiresAt: t.ExpiresAt})
	}
	s.writeJSON(w, r, http.StatusOK, sessionsResponse{Sessions: infos})
}

func toAuthResponse(resp *services.AuthResponse) authResponse {
	return authResponse{
		AccessToken:  resp.AccessToken,
		UserID:       strconv.FormatInt(resp.UserID, 10),
		Email:        resp.Email,
		RefreshToken: resp.RefreshToken,
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{
			Title:  "Bad Request",
			Errors: []string{"request body is not valid JSON"},
		})
		return false
	}
	return true
}

// writeError maps service errors onto HTTP statuses. Validation and
// domain failures carry their messages; anything unexpected becomes an
// opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Title: "Validation Error", Errors: verr.Messages})
	case errors.Is(err, common.ErrorEmailTaken):
		s.writeJSON(w, r, http.StatusConflict, errorResponse{Title: "Conflict", Errors: []string{err.Error()}})
	case errors.Is(err, common.ErrInvalidCredentials):
		s.writeJSON(w, r, http.StatusUnauthorized, errorResponse{Title: "Unauthorized", Errors: []string{err.Error()}})
	case errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenRevoked):
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Title: "Invalid Token", Errors: []string{err.Error()}})
	default:
		s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{
			Title:  "Server Error",
			Errors: []string{common.ErrorInternal.Error()},
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "writing response failed", "error", err.Error())
	}
}
