package controllers

import (
	"net/http"

	"github.com/blissmahlathi/campusmarket-backend/api/responses"
	"github.com/blissmahlathi/campusmarket-backend/api/validators"
	"github.com/blissmahlathi/campusmarket-backend/internal/checkout"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
)

// Checkout turns the caller's cart into one order per vendor.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := actorUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkout.Request
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
