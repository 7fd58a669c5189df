package enums

import "fmt"

// NotificationType distinguishes the order events a notification reports.
type NotificationType string

const (
	NotificationTypeOrderReceived  NotificationType = "order_received"
	NotificationTypeOrderApproved  NotificationType = "order_approved"
	NotificationTypeOrderRejected  NotificationType = "order_rejected"
	NotificationTypeOrderCompleted NotificationType = "order_completed"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeOrderReceived,
	NotificationTypeOrderApproved,
	NotificationTypeOrderRejected,
	NotificationTypeOrderCompleted,
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

// NotificationStatus records the dispatch outcome persisted with each row.
type NotificationStatus string

const (
	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// IsValid reports whether the value is a known NotificationStatus.
func (n NotificationStatus) IsValid() bool {
	return n == NotificationStatusSent || n == NotificationStatusFailed
}

// RecipientType selects which side of an order a notification targets.
type RecipientType string

const (
	RecipientTypeVendor   RecipientType = "vendor"
	RecipientTypeCustomer RecipientType = "customer"
)

// IsValid reports whether the value is a known RecipientType.
func (r RecipientType) IsValid() bool {
	return r == RecipientTypeVendor || r == RecipientTypeCustomer
}

// ParseRecipientType converts raw input into a RecipientType.
func ParseRecipientType(value string) (RecipientType, error) {
	switch RecipientType(value) {
	case RecipientTypeVendor:
		return RecipientTypeVendor, nil
	case RecipientTypeCustomer:
		return RecipientTypeCustomer, nil
	}
	return "", fmt.Errorf("invalid recipient type %q", value)
}
