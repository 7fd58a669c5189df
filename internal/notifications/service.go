package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
	"github.com/blissmahlathi/campusmarket-backend/pkg/whatsapp"
)

// DispatchInput identifies the order event to notify about. The order must
// arrive with its Customer and Vendor associations loaded.
type DispatchInput struct {
	Order *models.Order
	Type  enums.NotificationType
}

// NotificationDTO is the transport shape for a stored notification.
type NotificationDTO struct {
	ID        uuid.UUID                `json:"id"`
	OrderID   uuid.UUID                `json:"order_id"`
	Type      enums.NotificationType   `json:"type"`
	Message   string                   `json:"message"`
	Status    enums.NotificationStatus `json:"status"`
	ReadAt    *time.Time               `json:"read_at,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

// NotificationList wraps a cursor page of notifications.
type NotificationList struct {
	Notifications []NotificationDTO `json:"notifications"`
	NextCursor    string            `json:"next_cursor,omitempty"`
}

// Service defines notification dispatch and inbox operations.
type Service interface {
	Dispatch(ctx context.Context, input DispatchInput) error
	List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*NotificationList, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs the notification service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Dispatch persists the notification row and, for vendor recipients, logs the
// WhatsApp hand-off link. Delivery is best effort.
func (s *service) Dispatch(ctx context.Context, input DispatchInput) error {
	order := input.Order
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown notification type %q", input.Type))
	}

	msgInput := MessageInput{
		Total:           order.TotalAmount,
		DeliveryAddress: order.DeliveryAddress,
	}
	msgInput.CustomerName = order.BuyerName
	if msgInput.CustomerName == "" && order.Customer != nil {
		msgInput.CustomerName = order.Customer.Name
	}
	if order.Vendor != nil {
		msgInput.VendorName = order.Vendor.BusinessName
	}

	recipientID, vendorNumber := resolveRecipient(order, input.Type)
	if recipientID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order is missing the notification recipient")
	}

	message := Message(input.Type, msgInput)
	if _, err := s.repo.Create(ctx, &models.Notification{
		UserID:  recipientID,
		OrderID: order.ID,
		Type:    input.Type,
		Message: message,
		Status:  enums.NotificationStatusSent,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store notification")
	}

	if vendorNumber != "" {
		link := whatsapp.Link(vendorNumber, message)
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"order_id":      order.ID.String(),
			"type":          string(input.Type),
			"whatsapp_link": link,
		}), "vendor notification ready")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pagination.Params) (*NotificationList, error) {
	rows, next, err := s.repo.ListForUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	out := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NotificationDTO{
			ID:        row.ID,
			OrderID:   row.OrderID,
			Type:      row.Type,
			Message:   row.Message,
			Status:    row.Status,
			ReadAt:    row.ReadAt,
			CreatedAt: row.CreatedAt,
		})
	}
	return &NotificationList{Notifications: out, NextCursor: next}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, userID, notificationID, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	return nil
}

// resolveRecipient picks the user the event targets. order_received goes to
// the vendor's owning user, everything else to the customer.
func resolveRecipient(order *models.Order, kind enums.NotificationType) (uuid.UUID, string) {
	if kind == enums.NotificationTypeOrderReceived {
		if order.Vendor == nil {
			return uuid.Nil, ""
		}
		return order.Vendor.UserID, order.Vendor.ContactNumber
	}
	return order.CustomerID, ""
}
