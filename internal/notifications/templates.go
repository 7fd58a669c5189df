package notifications

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// MessageInput carries the order fields interpolated into notification text.
type MessageInput struct {
	CustomerName    string
	VendorName      string
	Total           decimal.Decimal
	DeliveryAddress string
}

// Message renders the notification body for the given event type.
func Message(kind enums.NotificationType, in MessageInput) string {
	switch kind {
	case enums.NotificationTypeOrderReceived:
		return fmt.Sprintf(
			"New Order Alert!\n\nYou have received a new order from %s.\nTotal: R%s\nDelivery: %s\n\nPlease check your dashboard to confirm or reject the order.",
			in.CustomerName, in.Total.StringFixed(2), in.DeliveryAddress,
		)
	case enums.NotificationTypeOrderApproved:
		return fmt.Sprintf(
			"Order Approved!\n\nGreat news! Your order has been confirmed by %s.\nOrder Total: R%s\n\nThe vendor will start preparing your order soon.",
			in.VendorName, in.Total.StringFixed(2),
		)
	case enums.NotificationTypeOrderRejected:
		return fmt.Sprintf(
			"Order Rejected\n\nWe're sorry, but your order has been rejected by %s.\nOrder Total: R%s\n\nPlease try ordering from a different vendor.",
			in.VendorName, in.Total.StringFixed(2),
		)
	case enums.NotificationTypeOrderCompleted:
		return fmt.Sprintf(
			"Order Completed!\n\nYour order has been completed and is ready for pickup/delivery.\nOrder Total: R%s\n\nThank you for your business!",
			in.Total.StringFixed(2),
		)
	}
	return ""
}
