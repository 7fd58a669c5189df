package notifications

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

func TestMessageRendering(t *testing.T) {
	input := MessageInput{
		CustomerName:    "Thabo M",
		VendorName:      "Mama's Kitchen",
		Total:           decimal.RequireFromString("115.5"),
		DeliveryAddress: "Res Block B, Room 14",
	}

	cases := []struct {
		kind     enums.NotificationType
		contains []string
	}{
		{enums.NotificationTypeOrderReceived, []string{"New Order Alert", "Thabo M", "R115.50", "Res Block B, Room 14"}},
		{enums.NotificationTypeOrderApproved, []string{"Order Approved", "Mama's Kitchen", "R115.50"}},
		{enums.NotificationTypeOrderRejected, []string{"Order Rejected", "Mama's Kitchen", "R115.50"}},
		{enums.NotificationTypeOrderCompleted, []string{"Order Completed", "R115.50"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			message := Message(tc.kind, input)
			for _, want := range tc.contains {
				if !strings.Contains(message, want) {
					t.Fatalf("message for %s missing %q:\n%s", tc.kind, want, message)
				}
			}
		})
	}
}

func TestMessageUnknownType(t *testing.T) {
	if got := Message(enums.NotificationType("order_shipped"), MessageInput{}); got != "" {
		t.Fatalf("expected empty message for unknown type, got %q", got)
	}
}

func TestResolveRecipient(t *testing.T) {
	customerID := uuid.New()
	vendorUserID := uuid.New()
	order := &models.Order{
		CustomerID: customerID,
		Vendor: &models.Vendor{
			UserID:        vendorUserID,
			ContactNumber: "0721234567",
		},
	}

	recipient, number := resolveRecipient(order, enums.NotificationTypeOrderReceived)
	if recipient != vendorUserID || number != "0721234567" {
		t.Fatalf("order_received should target the vendor user, got %s / %q", recipient, number)
	}

	recipient, number = resolveRecipient(order, enums.NotificationTypeOrderApproved)
	if recipient != customerID || number != "" {
		t.Fatalf("buyer events should target the customer, got %s / %q", recipient, number)
	}
}

func TestResolveRecipientMissingVendor(t *testing.T) {
	order := &models.Order{CustomerID: uuid.New()}
	recipient, _ := resolveRecipient(order, enums.NotificationTypeOrderReceived)
	if recipient != uuid.Nil {
		t.Fatalf("expected nil recipient without a loaded vendor, got %s", recipient)
	}
}
