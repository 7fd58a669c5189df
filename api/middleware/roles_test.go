package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func requestWith(ctx context.Context) *http.Request {
	return httptest.NewRequest(http.MethodGet, "/protected", nil).WithContext(ctx)
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	var called bool
	handler := RequireRole(string(enums.UserRoleVendor), testLogger())(okHandler(&called))

	ctx := WithRole(context.Background(), string(enums.UserRoleVendor))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(ctx))

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d", rec.Code)
	}
}

func TestRequireRoleRejectsMismatch(t *testing.T) {
	var called bool
	handler := RequireRole(string(enums.UserRoleAdmin), testLogger())(okHandler(&called))

	ctx := WithRole(context.Background(), string(enums.UserRoleBuyer))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(ctx))

	if called {
		t.Fatal("handler must not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	var called bool
	handler := RequireRole(string(enums.UserRoleVendor), testLogger())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(context.Background()))

	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdminEmailMatchesConfiguredAddress(t *testing.T) {
	var called bool
	handler := RequireAdminEmail("ops@campus.example", testLogger())(okHandler(&called))

	ctx := context.WithValue(context.Background(), ctxEmail, "  OPS@Campus.Example ")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(ctx))

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got status %d", rec.Code)
	}
}

// Holding the ADMIN role is not enough. The email on the token must also be
// the configured operator address.
func TestRequireAdminEmailRejectsOtherAdmins(t *testing.T) {
	var called bool
	handler := RequireAdminEmail("ops@campus.example", testLogger())(okHandler(&called))

	ctx := WithRole(context.Background(), string(enums.UserRoleAdmin))
	ctx = context.WithValue(ctx, ctxEmail, "other-admin@campus.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(ctx))

	if called {
		t.Fatal("handler must not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAdminEmailFailsClosedWhenUnconfigured(t *testing.T) {
	var called bool
	handler := RequireAdminEmail("", testLogger())(okHandler(&called))

	ctx := context.WithValue(context.Background(), ctxEmail, "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWith(ctx))

	if called || rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
