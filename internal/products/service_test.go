package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
)

// Validation happens before any persistence, so a zero repository is safe
// for these paths.
func newValidationService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(&Repository{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != want {
		t.Fatalf("expected %s, got %v", want, err)
	}
}

func TestCreateRequiresVendorContext(t *testing.T) {
	svc := newValidationService(t)

	_, err := svc.Create(context.Background(), uuid.Nil, CreateProductRequest{
		Name:  "Kota",
		Price: decimal.RequireFromString("35.00"),
	})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateValidatesFields(t *testing.T) {
	svc := newValidationService(t)
	vendorID := uuid.New()

	cases := []struct {
		name string
		req  CreateProductRequest
	}{
		{"blank name", CreateProductRequest{Name: "   ", Price: decimal.RequireFromString("35.00")}},
		{"zero price", CreateProductRequest{Name: "Kota", Price: decimal.Zero}},
		{"negative price", CreateProductRequest{Name: "Kota", Price: decimal.RequireFromString("-1")}},
		{"negative stock", CreateProductRequest{Name: "Kota", Price: decimal.RequireFromString("35.00"), Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), vendorID, tc.req)
			assertCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestUpdateRequiresVendorContext(t *testing.T) {
	svc := newValidationService(t)

	_, err := svc.Update(context.Background(), uuid.Nil, uuid.New(), UpdateProductRequest{})
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestDeleteRequiresVendorContext(t *testing.T) {
	svc := newValidationService(t)

	err := svc.Delete(context.Background(), uuid.Nil, uuid.New())
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := newValidationService(t)

	_, err := svc.CreateCategory(context.Background(), "  ")
	assertCode(t, err, pkgerrors.CodeValidation)
}
