package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blissmahlathi/campusmarket-backend/internal/users"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
)

// Decision is the action an admin takes on a pending application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Service defines vendor application and profile operations.
type Service interface {
	Apply(ctx context.Context, userID uuid.UUID, req ApplyRequest) (*VendorDTO, error)
	Decide(ctx context.Context, vendorID uuid.UUID, decision Decision) (*VendorDTO, error)
	Get(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*VendorDTO, error)
	List(ctx context.Context, params pagination.Params, status *enums.VendorStatus) (*VendorList, error)
}

type service struct {
	repo *Repository
	db   *db.Client
}

// NewService constructs the vendor service.
func NewService(repo *Repository, client *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository is required")
	}
	if client == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{repo: repo, db: client}, nil
}

func (s *service) Apply(ctx context.Context, userID uuid.UUID, req ApplyRequest) (*VendorDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business name is required")
	}
	contact := strings.TrimSpace(req.ContactNumber)
	if contact == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact number is required")
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor application already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check vendor application")
	}

	vendor, err := s.repo.Create(ctx, &models.Vendor{
		UserID:        userID,
		BusinessName:  name,
		Description:   req.Description,
		ContactNumber: contact,
		Location:      req.Location,
		Status:        enums.VendorStatusPending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create vendor application")
	}
	return FromModel(vendor), nil
}

// Decide resolves a pending application. Approval also promotes the owning
// user to the vendor role so their token carries it after the next login.
func (s *service) Decide(ctx context.Context, vendorID uuid.UUID, decision Decision) (*VendorDTO, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id required")
	}

	var target enums.VendorStatus
	switch decision {
	case DecisionApprove:
		target = enums.VendorStatusApproved
	case DecisionReject:
		target = enums.VendorStatusRejected
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown decision %q", decision))
	}

	var updated *models.Vendor
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		vendor, err := repo.FindByID(ctx, vendorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
		}
		if vendor.Status != enums.VendorStatusPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "vendor application already decided")
		}

		if err := repo.UpdateStatus(ctx, vendor.ID, target); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor status")
		}
		if target == enums.VendorStatusApproved {
			if err := users.NewRepository(tx).UpdateRole(ctx, vendor.UserID, enums.UserRoleVendor); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "promote user role")
			}
		}

		vendor.Status = target
		updated = vendor
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Get(ctx context.Context, vendorID uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor")
	}
	return FromModel(vendor), nil
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load vendor")
	}
	return FromModel(vendor), nil
}

func (s *service) List(ctx context.Context, params pagination.Params, status *enums.VendorStatus) (*VendorList, error) {
	vendors, next, err := s.repo.List(ctx, params, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendors")
	}
	out := make([]VendorDTO, 0, len(vendors))
	for i := range vendors {
		out = append(out, *FromModel(&vendors[i]))
	}
	return &VendorList{Vendors: out, NextCursor: next}, nil
}
