package middleware

import (
	"net/http"
	"strings"

	"github.com/blissmahlathi/campusmarket-backend/api/responses"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
)

func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminEmail gates a route on the single operator address from config.
// The ADMIN role alone is not enough to pass it.
func RequireAdminEmail(adminEmail string, logg *logger.Logger) func(http.Handler) http.Handler {
	normalized := strings.ToLower(strings.TrimSpace(adminEmail))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := strings.ToLower(strings.TrimSpace(EmailFromContext(r.Context())))
			if normalized == "" || email != normalized {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "administrator access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
