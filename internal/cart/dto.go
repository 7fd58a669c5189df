package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the payload for adding a product to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1"`
}

// UpdateQuantityRequest sets the absolute quantity for a cart line.
// Quantities below one remove the line.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ItemDTO is a hydrated cart line joined against the product catalog.
type ItemDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	VendorName  string          `json:"vendor_name,omitempty"`
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	ImageURL    *string         `json:"image_url,omitempty"`
	IsAvailable bool            `json:"is_available"`
	AddedAt     time.Time       `json:"added_at"`
}

// CartDTO is the full cart view returned to buyers.
type CartDTO struct {
	Items []ItemDTO       `json:"items"`
	Total decimal.Decimal `json:"total"`
}
