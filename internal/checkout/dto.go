package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/internal/orders"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// Request is the payload submitted when a buyer checks out their cart.
type Request struct {
	BuyerName       string              `json:"buyer_name" validate:"required"`
	BuyerPhone      string              `json:"buyer_phone" validate:"required"`
	DeliveryAddress string              `json:"delivery_address" validate:"required"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method" validate:"required"`
	PaymentAmount   *decimal.Decimal    `json:"payment_amount,omitempty"`
	Notes           *string             `json:"notes,omitempty"`
}

// VendorOrderSummary describes one created order in the checkout summary.
type VendorOrderSummary struct {
	OrderID      uuid.UUID        `json:"order_id"`
	VendorID     uuid.UUID        `json:"vendor_id"`
	VendorName   string           `json:"vendor_name"`
	Total        decimal.Decimal  `json:"total"`
	Items        []orders.ItemDTO `json:"items"`
	WhatsAppLink string           `json:"whatsapp_link,omitempty"`
}

// Summary is returned to the buyer after a successful checkout.
type Summary struct {
	Orders          []VendorOrderSummary `json:"orders"`
	BuyerName       string               `json:"buyer_name"`
	BuyerPhone      string               `json:"buyer_phone"`
	DeliveryAddress string               `json:"delivery_address"`
	PaymentMethod   enums.PaymentMethod  `json:"payment_method"`
	GrandTotal      decimal.Decimal      `json:"grand_total"`
}
