package auth

import (
	"context"
	"net/http"
	"strings"

	"front-of-house/internal/common/httpx"
	"front-of-house/internal/domain"
)

type contextKey struct{}

// SessionFrom returns the authenticated session stored by the middleware.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(domain.Session)
	return s, ok
}

// Capability predicates used in route policy tables. Capability checks are
// enforced here, server-side, against the staff store; nothing trusts a
// role value supplied by the client.
var (
	AdminOnly     = domain.Role.IsAdmin
	AnyEmployee   = domain.Role.IsEmployee
	ChefOrAdmin   = func(r domain.Role) bool { return r.IsChef() || r.IsAdmin() }
	WaiterOrAdmin = func(r domain.Role) bool { return r.IsWaiter() || r.IsAdmin() }
)

// Require wraps a handler with bearer-token authentication plus a
// capability check on the resolved role.
func (s *Service) Require(allowed func(domain.Role) bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			httpx.WriteProblem(w, http.StatusUnauthorized, "missing_token", "Authorization: Bearer token required")
			return
		}

		session, ok, err := s.SessionFromToken(r.Context(), token)
		if err != nil {
			httpx.WriteProblem(w, http.StatusInternalServerError, "db_error", "could not resolve session")
			return
		}
		if !ok {
			httpx.WriteProblem(w, http.StatusUnauthorized, "invalid_token", "session is unknown or expired")
			return
		}
		if !allowed(session.Role) {
			httpx.WriteProblem(w, http.StatusForbidden, "forbidden", "role is not allowed to perform this action")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, session)))
	}
}
