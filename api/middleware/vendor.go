package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/api/responses"
	"github.com/blissmahlathi/campusmarket-backend/internal/vendors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
)

type vendorResolver interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*vendors.VendorDTO, error)
}

// VendorContext resolves the caller's approved vendor profile and seeds its
// id into the request context. Pending and rejected applicants are turned
// away here so handlers can assume an approved vendor.
func VendorContext(resolver vendorResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing"))
				return
			}

			vendor, err := resolver.GetByUser(r.Context(), userID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if vendor.Status != enums.VendorStatusApproved {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "vendor profile not approved"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxVendorID, vendor.ID.String())
			if logg != nil {
				ctx = logg.WithField(ctx, "vendor_id", vendor.ID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
