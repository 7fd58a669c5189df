package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/api/middleware"
	"github.com/blissmahlathi/campusmarket-backend/api/validators"
	"github.com/blissmahlathi/campusmarket-backend/internal/orders"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
)

func actorUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return id, nil
}

func actorVendorID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.VendorIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor context missing")
	}
	return id, nil
}

// actorFromRequest assembles the identity the order service authorizes
// against. The vendor id is only present on routes behind VendorContext.
func actorFromRequest(r *http.Request) (orders.Actor, error) {
	userID, err := actorUserID(r)
	if err != nil {
		return orders.Actor{}, err
	}
	actor := orders.Actor{
		UserID: userID,
		Role:   enums.UserRole(middleware.RoleFromContext(r.Context())),
	}
	if raw := middleware.VendorIDFromContext(r.Context()); raw != "" {
		if vendorID, parseErr := uuid.Parse(raw); parseErr == nil {
			actor.VendorID = &vendorID
		}
	}
	return actor, nil
}

func pathUUID(r *http.Request, param string, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid identifier").WithDetails(map[string]any{"field": param})
	}
	return id, nil
}

func paginationFromQuery(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: r.URL.Query().Get("cursor"),
	}, nil
}
