package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
)

// ListFilters describe the inputs supported by the order lists.
type ListFilters struct {
	Status   *enums.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// UpdateStatusRequest is the payload for the status transition endpoint.
type UpdateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// ItemDTO is an order line in transport shape.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// PartyDTO names one side of an order.
type PartyDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone *string   `json:"phone,omitempty"`
}

// OrderDTO is the full order view.
type OrderDTO struct {
	ID              uuid.UUID           `json:"id"`
	Status          enums.OrderStatus   `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	PaymentAmount   decimal.Decimal     `json:"payment_amount"`
	BuyerName       string              `json:"buyer_name"`
	DeliveryAddress string              `json:"delivery_address"`
	PhoneNumber     string              `json:"phone_number"`
	Notes           *string             `json:"notes,omitempty"`
	Items           []ItemDTO           `json:"items"`
	Customer        *PartyDTO           `json:"customer,omitempty"`
	Vendor          *PartyDTO           `json:"vendor,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderList wraps paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	dto := &OrderDTO{
		ID:              o.ID,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		PaymentMethod:   o.PaymentMethod,
		PaymentAmount:   o.PaymentAmount,
		BuyerName:       o.BuyerName,
		DeliveryAddress: o.DeliveryAddress,
		PhoneNumber:     o.PhoneNumber,
		Notes:           o.Notes,
		Items:           make([]ItemDTO, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, item := range o.Items {
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
		})
	}
	if o.Customer != nil {
		dto.Customer = &PartyDTO{ID: o.Customer.ID, Name: o.Customer.Name, Phone: o.Customer.Phone}
	}
	if o.Vendor != nil {
		vendorPhone := o.Vendor.ContactNumber
		dto.Vendor = &PartyDTO{ID: o.Vendor.ID, Name: o.Vendor.BusinessName, Phone: &vendorPhone}
	}
	return dto
}
