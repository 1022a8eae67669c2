package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/yunusemrekaplan/SmartFA-Dev/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// requireAccessToken validates the bearer token on protected routes and
// stores the verified claims in the request context.
func (s *Server) requireAccessToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.unauthorized(w, r)
			return
		}

		claims, err := s.signer.ParseAccessToken(token)
		if err != nil {
			s.unauthorized(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusUnauthorized, errorResponse{
		Title:  "Unauthorized",
		Errors: []string{"a valid access token is required"},
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}
