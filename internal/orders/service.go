package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blissmahlathi/campusmarket-backend/internal/notifications"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
)

// Actor identifies who is asking for an order operation. VendorID is set
// when the user owns an approved vendor profile.
type Actor struct {
	UserID   uuid.UUID
	Role     enums.UserRole
	VendorID *uuid.UUID
}

// TransitionInput carries a status change request.
type TransitionInput struct {
	OrderID uuid.UUID
	Target  enums.OrderStatus
	Actor   Actor
}

type notifier interface {
	Notify(ctx context.Context, input notifications.DispatchInput)
}

// Service defines order lifecycle and read operations.
type Service interface {
	Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error)
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*OrderList, error)
}

type service struct {
	repo     Repository
	notifier notifier
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, n notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if n == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{repo: repo, notifier: n}, nil
}

func (s *service) Transition(ctx context.Context, input TransitionInput) (*OrderDTO, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Target))
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch input.Actor.Role {
	case enums.UserRoleAdmin:
		// Admins may force any valid status.
	case enums.UserRoleVendor:
		if input.Actor.VendorID == nil || *input.Actor.VendorID != order.VendorID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
		}
		if !CanVendorTransition(order.Status, input.Target) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", order.Status, input.Target))
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "buyers cannot change order status")
	}

	if order.Status == input.Target {
		return FromModel(order), nil
	}

	if err := s.repo.UpdateStatus(ctx, order.ID, input.Target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	order.Status = input.Target

	if kind, ok := notificationForStatus(input.Target); ok {
		s.notifier.Notify(ctx, notifications.DispatchInput{Order: order, Type: kind})
	}

	return FromModel(order), nil
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	if !canView(actor, order) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is not visible to this user")
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, actor Actor, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var (
		rows []models.Order
		next string
		err  error
	)
	switch {
	case actor.Role == enums.UserRoleAdmin:
		rows, next, err = s.repo.ListAll(ctx, params, filters)
	case actor.Role == enums.UserRoleVendor && actor.VendorID != nil:
		rows, next, err = s.repo.ListForVendor(ctx, *actor.VendorID, params, filters)
	default:
		rows, next, err = s.repo.ListForCustomer(ctx, actor.UserID, params, filters)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &OrderList{Orders: out, NextCursor: next}, nil
}

func canView(actor Actor, order *models.Order) bool {
	switch actor.Role {
	case enums.UserRoleAdmin:
		return true
	case enums.UserRoleVendor:
		if actor.VendorID != nil && *actor.VendorID == order.VendorID {
			return true
		}
	}
	return order.CustomerID == actor.UserID
}

// notificationForStatus maps a transition target to the customer-facing
// notification it triggers.
func notificationForStatus(status enums.OrderStatus) (enums.NotificationType, bool) {
	switch status {
	case enums.OrderStatusConfirmed:
		return enums.NotificationTypeOrderApproved, true
	case enums.OrderStatusRejected:
		return enums.NotificationTypeOrderRejected, true
	case enums.OrderStatusCompleted:
		return enums.NotificationTypeOrderCompleted, true
	}
	return "", false
}
